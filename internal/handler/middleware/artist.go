package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

const ContextKeyArtistID = "artist_id"

// ArtistResolver maps an account to the artist profile linked to it.
type ArtistResolver interface {
	ResolveArtistID(ctx context.Context, accountID uuid.UUID) (uint, error)
}

// RequireArtist resolves the caller's artist id and stores it under ContextKeyArtistID.
// Must be used after JWTAuth middleware.
func RequireArtist(resolver ArtistResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		accountID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.Unauthorized(c, "invalid user id")
			c.Abort()
			return
		}

		artistID, err := resolver.ResolveArtistID(c.Request.Context(), accountID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNoArtistProfile), errors.Is(err, service.ErrAccountNotFound):
				response.Forbidden(c, "artist profile required")
			default:
				response.InternalError(c, "failed to resolve artist")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyArtistID, artistID)
		c.Next()
	}
}
