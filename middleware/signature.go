package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignatureHeader carries the webhook signature from the chat platform.
const SignatureHeader = "X-Signature"

// VerifySignature validates the webhook signature: base64 of the
// HMAC-SHA256 digest of the raw request body, keyed with the channel
// secret. Requests with a missing or wrong signature are rejected with 400.
func VerifySignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		// Hand the body back for the handler's JSON binding.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !ValidSignature(body, secret, c.GetHeader(SignatureHeader)) {
			zap.L().Warn("webhook signature mismatch", zap.String("ip", getClientIP(c)))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		c.Next()
	}
}

// ValidSignature reports whether signature is the base64 HMAC-SHA256 of
// body under secret. Comparison is constant-time.
func ValidSignature(body []byte, secret, signature string) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
