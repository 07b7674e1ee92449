package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brimline/headwear-api/models"
)

// GET /orders/my-orders returns the session user's orders, newest first.
// Admins may pass ?all=true for every order; the flag is ignored for
// everyone else.
func MyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)

		roleVal, _ := c.Get("role")
		role, _ := roleVal.(models.Role)

		query := db.Preload("Items").Order("created_at DESC")
		if !(role == models.RoleAdmin && c.Query("all") == "true") {
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderRef
func GetOrderByRef(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)

		roleVal, _ := c.Get("role")
		role, _ := roleVal.(models.Role)

		query := db.Preload("Items").Where("order_ref = ?", c.Param("orderRef"))
		if role != models.RoleAdmin {
			query = query.Where("user_id = ?", userID)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
