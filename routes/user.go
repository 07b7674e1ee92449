package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/brimline/headwear-api/controllers/user"
	"github.com/brimline/headwear-api/middleware"
	"github.com/brimline/headwear-api/models"
)

// SetupUserRoutes registers all "/users/*" endpoints. JWT-protected.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/users")
	userGroup.Use(middleware.RequireAuth)
	{
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.PUT("/update", userControllers.UpdateUser(db))

		userGroup.GET("", middleware.RequireRole(models.RoleAdmin), userControllers.GetAllUsers(db))
	}
}
