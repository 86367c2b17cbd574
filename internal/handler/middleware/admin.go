package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/pkg/response"
)

// AdminAuth lets through callers whose role claim is admin or super_admin.
// Must be used after JWTAuth middleware.
func AdminAuth() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)
}

// SuperAdminAuth guards account and role management.
func SuperAdminAuth() gin.HandlerFunc {
	return RequireRoles(model.RoleSuperAdmin)
}

func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}

		if _, err := uuid.Parse(claims.Subject); err != nil {
			response.Unauthorized(c, "invalid user id")
			c.Abort()
			return
		}

		if _, permitted := allowed[model.Role(claims.Role)]; !permitted {
			response.Forbidden(c, "insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}
