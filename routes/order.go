package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/brimline/headwear-api/controllers/order"
	"github.com/brimline/headwear-api/middleware"
	"github.com/brimline/headwear-api/models"
)

// SetupOrderRoutes registers all "/orders/*" endpoints. JWT-protected.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth)
	{
		orders.GET("/my-orders", orderControllers.MyOrders(db))
		orders.GET("/:orderRef", orderControllers.GetOrderByRef(db))

		// live status feed for admin dashboards
		orders.GET("/ws/feed", middleware.RequireRole(models.RoleAdmin), orderControllers.OrderFeed)
	}
}
