package checkoutControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brimline/headwear-api/middleware"
	"github.com/brimline/headwear-api/models"
)

const webhookSecret = "whsec-test"

func setupWebhookTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", webhookSecret)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Address{}, &models.Order{}, &models.OrderItem{}))

	r := gin.New()
	r.POST("/checkout/webhook", middleware.VerifyWebhookSignature(), Webhook(db))
	return db, r
}

func seedPendingOrder(t *testing.T, db *gorm.DB, orderRef, gatewayOrderID string) models.Order {
	t.Helper()
	order := models.Order{
		OrderRef:    orderRef,
		UserID:      "user-1",
		TotalAmount: 49.90,
		Status:      models.OrderStatusPending,
		Payment:     models.Payment{GatewayOrderID: gatewayOrderID},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("x-razorpay-signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func capturedPayload(orderRef, gatewayOrderID string) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {
			"id": "pay_abc123",
			"order_id": %q,
			"method": "card",
			"captured": true,
			"notes": {"order_id": %q}
		}}}
	}`, gatewayOrderID, orderRef))
}

func TestWebhookRejectsTamperedSignature(t *testing.T) {
	db, r := setupWebhookTest(t)
	order := seedPendingOrder(t, db, "ref-1", "order_rzp1")

	body := capturedPayload("ref-1", "order_rzp1")

	w := postWebhook(r, body, sign([]byte("something else entirely")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postWebhook(r, body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, unchanged.Status)
	assert.Empty(t, unchanged.Payment.GatewayPaymentID)
}

func TestWebhookCapturedTransitionsToPaid(t *testing.T) {
	db, r := setupWebhookTest(t)
	order := seedPendingOrder(t, db, "ref-1", "order_rzp1")

	body := capturedPayload("ref-1", "order_rzp1")
	w := postWebhook(r, body, sign(body))
	require.Equal(t, http.StatusOK, w.Code)

	var paid models.Order
	require.NoError(t, db.First(&paid, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)
	assert.Equal(t, "pay_abc123", paid.Payment.GatewayPaymentID)
	assert.True(t, paid.Payment.Captured)
	assert.Equal(t, "card", paid.Payment.Method)
	assert.JSONEq(t, string(body), paid.Payment.RawPayload)
}

func TestWebhookRedeliveryIsHarmless(t *testing.T) {
	db, r := setupWebhookTest(t)
	order := seedPendingOrder(t, db, "ref-1", "order_rzp1")

	body := capturedPayload("ref-1", "order_rzp1")
	require.Equal(t, http.StatusOK, postWebhook(r, body, sign(body)).Code)

	var first models.Order
	require.NoError(t, db.First(&first, order.ID).Error)

	// the gateway redelivers the same event; the overwrite must re-apply
	// identical fields without duplicating anything
	require.Equal(t, http.StatusOK, postWebhook(r, body, sign(body)).Code)

	var second models.Order
	require.NoError(t, db.First(&second, order.ID).Error)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Payment, second.Payment)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestWebhookFallsBackToGatewayOrderID(t *testing.T) {
	db, r := setupWebhookTest(t)
	order := seedPendingOrder(t, db, "ref-1", "order_rzp1")

	// Razorpay serializes empty notes as an array
	body := []byte(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {
			"id": "pay_xyz",
			"order_id": "order_rzp1",
			"method": "upi",
			"captured": true,
			"notes": []
		}}}
	}`)

	w := postWebhook(r, body, sign(body))
	require.Equal(t, http.StatusOK, w.Code)

	var paid models.Order
	require.NoError(t, db.First(&paid, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, paid.Status)
	assert.Equal(t, "pay_xyz", paid.Payment.GatewayPaymentID)
}

func TestWebhookFailedEvent(t *testing.T) {
	db, r := setupWebhookTest(t)
	order := seedPendingOrder(t, db, "ref-1", "order_rzp1")

	body := []byte(`{
		"event": "payment.failed",
		"payload": {"payment": {"entity": {
			"id": "pay_fail",
			"order_id": "order_rzp1",
			"notes": {"order_id": "ref-1"}
		}}}
	}`)

	w := postWebhook(r, body, sign(body))
	require.Equal(t, http.StatusOK, w.Code)

	var failed models.Order
	require.NoError(t, db.First(&failed, order.ID).Error)
	assert.Equal(t, models.OrderStatusFailed, failed.Status)
	assert.JSONEq(t, string(body), failed.Payment.RawPayload)
	// failure attaches the payload only
	assert.Empty(t, failed.Payment.GatewayPaymentID)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	db, r := setupWebhookTest(t)
	order := seedPendingOrder(t, db, "ref-1", "order_rzp1")

	body := []byte(`{"event": "refund.processed", "payload": {}}`)
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, unchanged.Status)
}

func TestWebhookUnresolvableOrderIsAcknowledged(t *testing.T) {
	db, r := setupWebhookTest(t)
	seedPendingOrder(t, db, "ref-1", "order_rzp1")

	body := capturedPayload("ref-does-not-exist", "order_unknown")
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestWebhookMalformedPayload(t *testing.T) {
	db, r := setupWebhookTest(t)
	order := seedPendingOrder(t, db, "ref-1", "order_rzp1")

	// only a bad signature earns a 400; a valid signature over an
	// unparseable body is a processing failure
	body := []byte(`{"event": "payment.captured", "payload":`)
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "unexpected end")

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, unchanged.Status)
}
