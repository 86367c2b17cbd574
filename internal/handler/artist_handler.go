package handler

import (
	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

// ArtistHandler serves the self-service routes of an artist managing their own work.
type ArtistHandler struct {
	artistService       service.ArtistService
	artworkService      service.ArtworkService
	displayOrderService service.DisplayOrderService
}

func NewArtistHandler(
	artistService service.ArtistService,
	artworkService service.ArtworkService,
	displayOrderService service.DisplayOrderService,
) *ArtistHandler {
	return &ArtistHandler{
		artistService:       artistService,
		artworkService:      artworkService,
		displayOrderService: displayOrderService,
	}
}

func (h *ArtistHandler) artistID(c *gin.Context) (uint, bool) {
	id, ok := getArtistIDFromContext(c)
	if !ok {
		response.Forbidden(c, "artist profile required")
	}
	return id, ok
}

func (h *ArtistHandler) Profile(c *gin.Context) {
	artistID, ok := h.artistID(c)
	if !ok {
		return
	}

	artist, err := h.artistService.Get(c.Request.Context(), artistID)
	if err != nil {
		writeServiceError(c, err, "failed to load profile")
		return
	}

	response.Success(c, artist)
}

func (h *ArtistHandler) ListArtworks(c *gin.Context) {
	artistID, ok := h.artistID(c)
	if !ok {
		return
	}

	artworks, err := h.artworkService.ListOwn(c.Request.Context(), artistID)
	if err != nil {
		writeServiceError(c, err, "failed to list artworks")
		return
	}

	response.Success(c, artworks)
}

func (h *ArtistHandler) SubmitArtwork(c *gin.Context) {
	artistID, ok := h.artistID(c)
	if !ok {
		return
	}

	var req service.ArtworkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artwork, err := h.artworkService.Submit(c.Request.Context(), artistID, req)
	if err != nil {
		writeServiceError(c, err, "failed to submit artwork")
		return
	}

	response.Created(c, artwork)
}

func (h *ArtistHandler) UpdateArtwork(c *gin.Context) {
	artistID, ok := h.artistID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ArtworkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	artwork, err := h.artworkService.UpdateOwn(c.Request.Context(), artistID, id, req)
	if err != nil {
		writeServiceError(c, err, "failed to update artwork")
		return
	}

	response.Success(c, artwork)
}

func (h *ArtistHandler) DeleteArtwork(c *gin.Context) {
	artistID, ok := h.artistID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.artworkService.DeleteOwn(c.Request.Context(), artistID, id); err != nil {
		writeServiceError(c, err, "failed to delete artwork")
		return
	}

	response.Success(c, nil)
}

func (h *ArtistHandler) ReorderArtworks(c *gin.Context) {
	artistID, ok := h.artistID(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.displayOrderService.Reorder(c.Request.Context(), artistID, req.ArtworkIDs); err != nil {
		writeServiceError(c, err, "failed to reorder artworks")
		return
	}

	response.Success(c, nil)
}
