package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidSignature(t *testing.T) {
	body := []byte(`{"type":"text","userId":"u1","text":"reserve"}`)

	assert.True(t, ValidSignature(body, "secret", sign(body, "secret")))
	assert.False(t, ValidSignature(body, "secret", sign(body, "wrong-secret")))
	assert.False(t, ValidSignature(body, "secret", "not base64!!"))
	assert.False(t, ValidSignature(body, "secret", ""))
	assert.False(t, ValidSignature([]byte("tampered"), "secret", sign(body, "secret")))
}

func newSignatureRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/callback", VerifySignature(secret), func(c *gin.Context) {
		// The handler must still see the full body after verification.
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(body))
	})
	return r
}

func TestVerifySignatureAcceptsSignedRequest(t *testing.T) {
	r := newSignatureRouter("secret")
	body := []byte(`{"type":"text","userId":"u1","text":"reserve"}`)

	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader(body))
	req.Header.Set(SignatureHeader, sign(body, "secret"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(body), w.Body.String())
}

func TestVerifySignatureRejectsBadSignature(t *testing.T) {
	r := newSignatureRouter("secret")
	body := []byte(`{"type":"text","userId":"u1","text":"reserve"}`)

	tests := []struct {
		name      string
		signature string
	}{
		{"missing header", ""},
		{"wrong secret", sign(body, "other")},
		{"not base64", "%%%"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader(body))
			if tc.signature != "" {
				req.Header.Set(SignatureHeader, tc.signature)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
