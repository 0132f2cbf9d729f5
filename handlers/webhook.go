package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tablebot/models"
	"tablebot/services/dialog"
)

// WebhookHandler receives normalized chat events from the messaging platform.
type WebhookHandler struct {
	Dialog dialog.DialogService
	Logger *zap.Logger
}

func NewWebhookHandler(svc dialog.DialogService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Dialog: svc, Logger: logger}
}

// HandleCallback processes one webhook event and returns the ordered reply
// intents for the platform adapter to deliver.
func (h *WebhookHandler) HandleCallback(c *gin.Context) {
	requestID := uuid.New().String()

	var event models.InboundEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	replies, err := h.Dialog.HandleEvent(c.Request.Context(), event)
	if err != nil {
		h.Logger.Warn("rejected webhook event",
			zap.String("requestID", requestID),
			zap.String("userID", event.UserID),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event", "details": err.Error()})
		return
	}

	h.Logger.Info("webhook event processed",
		zap.String("requestID", requestID),
		zap.String("userID", event.UserID),
		zap.String("eventType", event.Type),
		zap.Int("replies", len(replies)))
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}
