package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tablebot/config"
	"tablebot/handlers"
	"tablebot/middleware"
	"tablebot/utils"
)

// RegisterWebhookRoute registers the chat platform callback endpoint.
// Every request is signature-checked before any JSON is parsed.
func RegisterWebhookRoute(r *gin.Engine, wh *handlers.WebhookHandler, channelSecret string) {
	r.POST("/callback", middleware.VerifySignature(channelSecret), wh.HandleCallback)
}

// RegisterReservationRoutes registers the reservation query endpoints.
func RegisterReservationRoutes(r *gin.Engine, rh *handlers.ReservationHandler) {
	api := r.Group("/api/reservations")
	{
		api.GET("/:userID", rh.ListReservations)
		api.DELETE("/:userID/:id", rh.CancelReservation)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, wh *handlers.WebhookHandler, rh *handlers.ReservationHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.SignatureHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterWebhookRoute(r, wh, config.AppConfig.ChannelSecret)
	RegisterReservationRoutes(r, rh)
}
