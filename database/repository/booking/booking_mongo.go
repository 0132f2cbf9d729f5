package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tablebot/database"
	"tablebot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
//
// Three collections cooperate:
//   - reservations: one document per reservation.
//   - slots: one counter document per slot key, holding the number of
//     confirmed reservations for that slot. The counter is created
//     idempotently on first use (unique index on slot_key); the capacity
//     check-and-increment is a conditional update whose filter only
//     matches a counter below capacity.
//   - counters: monotonic id sequence for reservations.
type MongoBookingRepo struct {
	reservationColl *mongo.Collection
	slotColl        *mongo.Collection
	counterColl     *mongo.Collection
	maxPerSlot      int
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(maxPerSlot int) BookingRepository {
	db := database.MongoClient.Database("tablebot")
	return &MongoBookingRepo{
		reservationColl: db.Collection("reservations"),
		slotColl:        db.Collection("slots"),
		counterColl:     db.Collection("counters"),
		maxPerSlot:      maxPerSlot,
	}
}

// CountConfirmed counts confirmed reservations with an exact datetime match.
func (repo *MongoBookingRepo) CountConfirmed(ctx context.Context, slotKey string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date_time": slotKey,
		"status":    models.StatusConfirmed,
	}
	count, err := repo.reservationColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting reservations for slot %s: %w", slotKey, err)
	}
	return int(count), nil
}

// ListByUser returns a user's reservations, newest first.
func (repo *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.reservationColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching reservations for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return reservations, nil
}

// EnsureIndexes creates the indexes the capacity guarantee relies on.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slotKeyIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "slot_key", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.slotColl.Indexes().CreateOne(ctx, slotKeyIdx); err != nil {
		return fmt.Errorf("failed to create slot_key index: %w", err)
	}

	reservationIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	}
	if _, err := repo.reservationColl.Indexes().CreateOne(ctx, reservationIdx); err != nil {
		return fmt.Errorf("failed to create reservation user index: %w", err)
	}

	slotStatusIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "date_time", Value: 1},
			{Key: "status", Value: 1},
		},
	}
	if _, err := repo.reservationColl.Indexes().CreateOne(ctx, slotStatusIdx); err != nil {
		return fmt.Errorf("failed to create reservation slot index: %w", err)
	}
	return nil
}

// nextReservationID allocates the next monotonic reservation id.
func (repo *MongoBookingRepo) nextReservationID(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": "reservation_id"}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := repo.counterColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to allocate reservation id: %w", err)
	}
	return counter.Seq, nil
}
