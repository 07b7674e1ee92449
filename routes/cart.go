package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/brimline/headwear-api/controllers/cart"
	"github.com/brimline/headwear-api/middleware"
)

// SetupCartRoutes registers all "/cart/*" endpoints. JWT-protected.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.RequireAuth)
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("", cartControllers.AddItem(db))
		cartGroup.PATCH("", cartControllers.UpdateQuantity(db))
		cartGroup.DELETE("/:product_id", cartControllers.RemoveItem(db))
		cartGroup.DELETE("", cartControllers.ClearCart(db))
	}
}
