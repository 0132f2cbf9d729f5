package bookingRepo

import (
	"context"
	"errors"

	"tablebot/models"
)

// ErrSlotFull is returned when a commit finds the slot already at capacity.
var ErrSlotFull = errors.New("slot capacity reached")

// ErrNotFound is returned when a reservation does not exist for the user.
var ErrNotFound = errors.New("reservation not found")

// BookingRepository defines the data access methods used by the dialog engine.
type BookingRepository interface {
	// CountConfirmed returns the number of confirmed reservations whose
	// datetime equals the slot key exactly. Reads committed data only.
	CountConfirmed(ctx context.Context, slotKey string) (int, error)
	// InsertConfirmed commits a confirmed reservation. The capacity check
	// and the insert are a single atomic operation; the committed count
	// for a slot can never exceed the configured maximum. Returns
	// ErrSlotFull when the slot has no remaining capacity.
	InsertConfirmed(ctx context.Context, userID, slotKey string, partySize int) (*models.Reservation, error)
	// CancelReservation flips a confirmed reservation to cancelled and
	// releases its capacity unit.
	CancelReservation(ctx context.Context, id int64, userID string) error
	// ListByUser returns a user's reservations, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	// EnsureIndexes creates the indexes the capacity guarantee relies on.
	EnsureIndexes(ctx context.Context) error
}
