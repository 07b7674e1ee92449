package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutControllers "github.com/brimline/headwear-api/controllers/checkout"
	"github.com/brimline/headwear-api/middleware"
)

// SetupCheckoutRoutes registers checkout creation and the gateway webhook.
// The webhook is unauthenticated by design; the signature middleware is its
// only gate.
func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("/create", middleware.RequireAuth, checkoutControllers.CreateCheckout(db))
		checkout.POST("/webhook",
			middleware.VerifyWebhookSignature(),
			checkoutControllers.Webhook(db),
		)
	}
}
