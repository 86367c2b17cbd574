package handler

import (
	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

// GalleryHandler serves the public, read-only gallery.
type GalleryHandler struct {
	artistService  service.ArtistService
	artworkService service.ArtworkService
	eventService   service.EventService
}

func NewGalleryHandler(
	artistService service.ArtistService,
	artworkService service.ArtworkService,
	eventService service.EventService,
) *GalleryHandler {
	return &GalleryHandler{
		artistService:  artistService,
		artworkService: artworkService,
		eventService:   eventService,
	}
}

func (h *GalleryHandler) ListArtists(c *gin.Context) {
	artists, err := h.artistService.ListPublic(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list artists")
		return
	}

	response.Success(c, artists)
}

func (h *GalleryHandler) GetArtist(c *gin.Context) {
	artist, err := h.artistService.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeServiceError(c, err, "failed to get artist")
		return
	}

	response.Success(c, artist)
}

func (h *GalleryHandler) ListArtworks(c *gin.Context) {
	artworks, err := h.artworkService.ListPublic(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list artworks")
		return
	}

	response.Success(c, artworks)
}

func (h *GalleryHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListPublic(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list events")
		return
	}

	response.Success(c, events)
}
