package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gallery/adminhub/internal/handler/middleware"
	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return uuid.Nil, ErrNoClaims
	}
	return claims.AccountID()
}

func getArtistIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middleware.ContextKeyArtistID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps service sentinel errors onto the response envelope.
// Unknown errors become a 500 carrying fallback rather than the internal message.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidReorder),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUnsupportedMedia):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrRefreshTokenInvalid):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInvitationEmailMismatch),
		errors.Is(err, service.ErrNoArtistProfile):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrArtistNotFound),
		errors.Is(err, service.ErrArtworkNotFound),
		errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvitationPending),
		errors.Is(err, service.ErrInvitationUnredeemed),
		errors.Is(err, service.ErrInvitationUsed),
		errors.Is(err, service.ErrAccountAlreadyActivated),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrArtistHasArtworks):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvitationExpired),
		errors.Is(err, service.ErrResetTokenInvalid):
		response.Gone(c, err.Error())
	case errors.Is(err, service.ErrUploadTooLarge):
		response.TooLarge(c, err.Error())
	case errors.Is(err, service.ErrInvitationEmailFailed):
		response.BadGateway(c, err.Error())
	case errors.Is(err, service.ErrInvitationCodeUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 503, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, fallback)
	}
}

// recordAudit notes an admin mutation on behalf of the caller.
func recordAudit(c *gin.Context, audit service.AuditService, action, resourceType, resourceID, detail string) {
	if audit == nil {
		return
	}
	actorID, err := getUserIDFromContext(c)
	if err != nil {
		return
	}
	audit.Record(c.Request.Context(), service.AuditEntry{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
		IPAddress:    c.ClientIP(),
	})
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
