package checkoutControllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/brimline/headwear-api/controllers/order"
	"github.com/brimline/headwear-api/middleware"
	"github.com/brimline/headwear-api/models"
)

const (
	eventPaymentCaptured = "payment.captured"
	eventPaymentFailed   = "payment.failed"
)

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"order_id"`
	Method   string          `json:"method"`
	Captured bool            `json:"captured"`
	Notes    json.RawMessage `json:"notes"` // object normally, [] when empty
}

// noteOrderRef pulls our order reference out of the gateway notes. The
// gateway serializes empty notes as an array, so decode failures just mean
// "no metadata".
func noteOrderRef(notes json.RawMessage) string {
	var decoded struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(notes, &decoded); err != nil {
		return ""
	}
	return decoded.OrderID
}

// Webhook handles gateway payment notifications. The signature middleware has
// already verified the raw body by the time this runs. Must answer quickly:
// the gateway redelivers on non-2xx, nothing is retried here.
func Webhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawVal, exists := c.Get(middleware.RawBodyKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		raw := rawVal.([]byte)

		// signature already verified; anything wrong past this point is a
		// processing failure, not a rejectable request
		var event webhookEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("webhook: malformed payload: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}

		switch event.Event {
		case eventPaymentCaptured:
			entity := event.Payload.Payment.Entity
			updates := map[string]interface{}{
				"status":                     models.OrderStatusPaid,
				"payment_gateway_payment_id": entity.ID,
				"payment_captured":           entity.Captured,
				"payment_method":             entity.Method,
				"payment_raw_payload":        string(raw),
			}
			if err := applyTransition(db, entity, updates); err != nil {
				log.Printf("webhook: failed to mark order paid: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Payment captured"})

		case eventPaymentFailed:
			entity := event.Payload.Payment.Entity
			updates := map[string]interface{}{
				"status":              models.OrderStatusFailed,
				"payment_raw_payload": string(raw),
			}
			if err := applyTransition(db, entity, updates); err != nil {
				log.Printf("webhook: failed to mark order failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Payment failure recorded"})

		default:
			c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
		}
	}
}

// applyTransition resolves the target order and applies the status update.
// Resolution tries our reference from the gateway notes first, then the
// gateway's own order id. An unresolvable order is acknowledged without
// touching anything. The update is a full overwrite of the same fields, so
// gateway redelivery re-applies identical data.
func applyTransition(db *gorm.DB, entity paymentEntity, updates map[string]interface{}) error {
	query := db
	if ref := noteOrderRef(entity.Notes); ref != "" {
		query = query.Where("order_ref = ?", ref)
	} else if entity.OrderID != "" {
		query = query.Where("payment_gateway_order_id = ?", entity.OrderID)
	} else {
		return nil
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return err
	}

	var updated models.Order
	if err := db.Preload("Items").First(&updated, order.ID).Error; err == nil {
		orderControllers.BroadcastOrderUpdate(updated)
	}
	return nil
}
