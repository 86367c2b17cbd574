package handler

import (
	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

type SetFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

type SetVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
	IsHidden  bool  `json:"is_hidden"`
}

func (h *AdminHandler) ListArtists(c *gin.Context) {
	artists, err := h.artistService.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list artists")
		return
	}

	response.Success(c, artists)
}

func (h *AdminHandler) GetArtist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artist, err := h.artistService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to get artist")
		return
	}

	response.Success(c, artist)
}

func (h *AdminHandler) CreateArtist(c *gin.Context) {
	var req service.ArtistInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artist, err := h.artistService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "failed to create artist")
		return
	}

	recordAudit(c, h.auditService, "artist.create", "artist", uintString(artist.ID), artist.Name)
	response.Created(c, artist)
}

func (h *AdminHandler) UpdateArtist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ArtistInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artist, err := h.artistService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, "failed to update artist")
		return
	}

	recordAudit(c, h.auditService, "artist.update", "artist", uintString(artist.ID), "")
	response.Success(c, artist)
}

func (h *AdminHandler) SetArtistFeatured(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artist, err := h.artistService.SetFeatured(c.Request.Context(), id, *req.Featured)
	if err != nil {
		writeServiceError(c, err, "failed to update artist")
		return
	}

	recordAudit(c, h.auditService, "artist.feature", "artist", uintString(artist.ID), "")
	response.Success(c, artist)
}

func (h *AdminHandler) SetArtistVisibility(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artist, err := h.artistService.SetVisibility(c.Request.Context(), id, *req.IsVisible, req.IsHidden)
	if err != nil {
		writeServiceError(c, err, "failed to update artist")
		return
	}

	recordAudit(c, h.auditService, "artist.visibility", "artist", uintString(artist.ID), "")
	response.Success(c, artist)
}

func (h *AdminHandler) DeleteArtist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.artistService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "failed to delete artist")
		return
	}

	recordAudit(c, h.auditService, "artist.delete", "artist", uintString(id), "")
	response.Success(c, nil)
}
