package checkoutControllers

import (
	"math"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/brimline/headwear-api/models"
)

// generateOrderRef builds the receipt id shared with the gateway. It rides
// along in the gateway order notes so the webhook can find its way back.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// amountInPaise converts a rupee total to the gateway's smallest currency
// unit. Must round, not truncate: float sums leave totals like 0.29 a hair
// under 29 paise.
func amountInPaise(total float64) int64 {
	return int64(math.Round(total * 100))
}

// POST /checkout/create totals the cart, registers an order with the payment
// gateway and stores a local pending order carrying the gateway order id.
func CreateCheckout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		var total float64
		var orderItems []models.OrderItem
		for _, item := range items {
			unit := item.Product.EffectivePrice()
			total += unit * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				UnitPrice:   unit,
				Quantity:    item.Quantity,
			})
		}

		orderRef := generateOrderRef()

		client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
		gatewayOrder, err := client.Order.Create(map[string]interface{}{
			"amount":   amountInPaise(total),
			"currency": "INR",
			"receipt":  orderRef,
			"notes":    map[string]interface{}{"order_id": orderRef},
		}, nil)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
			return
		}
		gatewayOrderID, _ := gatewayOrder["id"].(string)
		if gatewayOrderID == "" {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway returned no order id"})
			return
		}

		order := models.Order{
			OrderRef:    orderRef,
			UserID:      userID,
			Items:       orderItems,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
			Payment:     models.Payment{GatewayOrderID: gatewayOrderID},
			CreatedAt:   time.Now(),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_ref":        orderRef,
			"gateway_order_id": gatewayOrderID,
			"amount":           total,
			"currency":         "INR",
			"key_id":           os.Getenv("RAZORPAY_KEY_ID"),
		})
	}
}
