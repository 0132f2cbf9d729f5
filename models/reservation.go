package models

import "time"

// Reservation statuses. A reservation is immutable once created except for
// the Confirmed -> Cancelled transition.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation represents a committed reservation record.
type Reservation struct {
	ID        int64     `bson:"id" json:"id"`                 // Monotonic identifier allocated from the counter collection
	UserID    string    `bson:"user_id" json:"userId"`        // Chat-platform user who made the reservation
	DateTime  string    `bson:"date_time" json:"dateTime"`    // Slot key (local wall clock, interval-aligned)
	PartySize int       `bson:"party_size" json:"partySize"`  // Number of guests
	Status    string    `bson:"status" json:"status"`         // "confirmed" or "cancelled"
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`  // Timestamp when the record was created
}
