package middleware

import (
	"github.com/gin-gonic/gin"

	"brightline/internal/domain"
	"brightline/internal/pkg/response"
)

// RequireAccess must run after JWTAuth or OptionalAuth.
func RequireAccess(level domain.Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if domain.Allows(level, role) {
			c.Next()
			return
		}
		if role == "" {
			response.Unauthorized(c, "Authentication required")
		} else {
			response.Forbidden(c, "Access denied: insufficient permissions")
		}
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireAccess(domain.AccessAdmin)
}
