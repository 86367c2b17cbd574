package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

type CreateArtworkRequest struct {
	ArtistID uint `json:"artist_id" binding:"required"`
	service.ArtworkInput
}

type RejectArtworkRequest struct {
	Note string `json:"note"`
}

// ListArtworks accepts optional ?status= and ?artist_id= filters.
func (h *AdminHandler) ListArtworks(c *gin.Context) {
	filter := service.ArtworkListFilter{Status: model.ArtworkStatus(c.Query("status"))}
	if raw := c.Query("artist_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid artist_id")
			return
		}
		artistID := uint(id)
		filter.ArtistID = &artistID
	}

	artworks, err := h.artworkService.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "failed to list artworks")
		return
	}

	response.Success(c, artworks)
}

func (h *AdminHandler) GetArtwork(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artwork, err := h.artworkService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to get artwork")
		return
	}

	response.Success(c, artwork)
}

func (h *AdminHandler) CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artwork, err := h.artworkService.Create(c.Request.Context(), req.ArtistID, req.ArtworkInput)
	if err != nil {
		writeServiceError(c, err, "failed to create artwork")
		return
	}

	recordAudit(c, h.auditService, "artwork.create", "artwork", uintString(artwork.ID), artwork.Title)
	response.Created(c, artwork)
}

func (h *AdminHandler) UpdateArtwork(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ArtworkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artwork, err := h.artworkService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, "failed to update artwork")
		return
	}

	recordAudit(c, h.auditService, "artwork.update", "artwork", uintString(artwork.ID), "")
	response.Success(c, artwork)
}

func (h *AdminHandler) DeleteArtwork(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.artworkService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "failed to delete artwork")
		return
	}

	recordAudit(c, h.auditService, "artwork.delete", "artwork", uintString(id), "")
	response.Success(c, nil)
}

func (h *AdminHandler) ApproveArtwork(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artwork, err := h.artworkService.Approve(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to approve artwork")
		return
	}

	recordAudit(c, h.auditService, "artwork.approve", "artwork", uintString(artwork.ID), "")
	response.Success(c, artwork)
}

func (h *AdminHandler) RejectArtwork(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectArtworkRequest
	// the note is optional, so an empty body is fine
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	artwork, err := h.artworkService.Reject(c.Request.Context(), id, req.Note)
	if err != nil {
		writeServiceError(c, err, "failed to reject artwork")
		return
	}

	recordAudit(c, h.auditService, "artwork.reject", "artwork", uintString(artwork.ID), req.Note)
	response.Success(c, artwork)
}
