package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tablebot/config"
	"tablebot/database"
	bookingRepo "tablebot/database/repository/booking"
	conversationRepo "tablebot/database/repository/conversation"
	"tablebot/handlers"
	"tablebot/middleware"
	"tablebot/routes"
	"tablebot/services/dialog"
	"tablebot/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitStateCache()

	policy, err := config.AppConfig.Policy()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid booking policy: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo(policy.MaxPerSlot)
	states := conversationRepo.NewRedisConversationRepo(config.AppConfig.DialogTTL())

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	if err := bookings.EnsureIndexes(indexCtx); err != nil {
		cancelIndex()
		logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
	}
	cancelIndex()

	// services.
	dialogService := dialog.NewDefaultDialogService(policy, bookings, states)

	webhookHandler := handlers.NewWebhookHandler(dialogService, logger)
	reservationHandler := handlers.NewReservationHandler(bookings, logger)

	routes.RegisterRoutes(router, webhookHandler, reservationHandler)

	utils.StartHealthMonitor(utils.GetStateCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
