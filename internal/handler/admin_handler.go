package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

type AdminHandler struct {
	artistService       service.ArtistService
	artworkService      service.ArtworkService
	eventService        service.EventService
	displayOrderService service.DisplayOrderService
	auditService        service.AuditService
}

func NewAdminHandler(
	artistService service.ArtistService,
	artworkService service.ArtworkService,
	eventService service.EventService,
	displayOrderService service.DisplayOrderService,
	auditService service.AuditService,
) *AdminHandler {
	return &AdminHandler{
		artistService:       artistService,
		artworkService:      artworkService,
		eventService:        eventService,
		displayOrderService: displayOrderService,
		auditService:        auditService,
	}
}

type ReorderRequest struct {
	ArtworkIDs []uint `json:"artwork_ids" binding:"required"`
}

// RecomputeDisplayOrder renumbers the display orders of every visible artwork.
func (h *AdminHandler) RecomputeDisplayOrder(c *gin.Context) {
	updated, err := h.displayOrderService.Recompute(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to recompute display order")
		return
	}

	recordAudit(c, h.auditService, "display_order.recompute", "artwork", "", strconv.Itoa(updated)+" updated")
	response.Success(c, gin.H{"updated": updated})
}

// ReorderArtistArtworks applies a manual per-artist order.
func (h *AdminHandler) ReorderArtistArtworks(c *gin.Context) {
	artistID, ok := parseIDParam(c, "id")
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

	recordAudit(c, h.auditService, "artwork.reorder", "artist", uintString(artistID), "")
	response.Success(c, nil)
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err, "failed to list audit logs")
		return
	}

	response.Success(c, entries)
}
