package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// RawBodyKey is where the verified raw webhook body is stored in the request
// context. The signature covers the exact bytes on the wire, so the handler
// must parse the same bytes the check ran over.
const RawBodyKey = "raw_body"

// VerifyWebhookSignature recomputes the gateway's HMAC-SHA256 over the raw
// request body and rejects the request unless it matches x-razorpay-signature.
// A rejected request never reaches the order handler.
func VerifyWebhookSignature() gin.HandlerFunc {
	secret := os.Getenv("RAZORPAY_WEBHOOK_SECRET")
	if secret == "" {
		panic("RAZORPAY_WEBHOOK_SECRET is not set")
	}

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		provided := c.GetHeader("x-razorpay-signature")
		if provided == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing webhook signature"})
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(provided)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Set(RawBodyKey, body)
		c.Next()
	}
}
