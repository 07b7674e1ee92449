package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brimline/headwear-api/models"
)

// RequireRole gates a route group on the role claim set by RequireAuth.
// Keeping the check here keeps role logic out of individual handlers.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}
		if role, ok := roleVal.(models.Role); !ok || role != required {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
