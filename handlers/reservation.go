package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "tablebot/database/repository/booking"
	"tablebot/utils"
)

// ReservationHandler serves the reservation query and cancellation API.
type ReservationHandler struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

func NewReservationHandler(repo bookingRepo.BookingRepository, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Repo: repo, Logger: logger}
}

// ListReservations returns a user's reservations, newest first.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	userID := c.Param("userID")
	reservations, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list reservations",
			zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// CancelReservation cancels one of the user's confirmed reservations and
// releases its slot capacity.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID := c.Param("userID")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	if err := h.Repo.CancelReservation(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		h.Logger.Error("failed to cancel reservation",
			zap.String("userID", userID), zap.Int64("reservationID", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel reservation", "")
		return
	}

	h.Logger.Info("reservation cancelled",
		zap.String("userID", userID), zap.Int64("reservationID", id))
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "reservationID": id})
}
