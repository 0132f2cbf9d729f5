package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablebot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureSlotCounter creates the per-slot counter document on first use.
// Runs outside the booking transaction so the transactional capacity
// check always finds a committed counter to match against. Concurrent
// creators race on the unique slot_key index; the loser's duplicate-key
// error only means the counter now exists, never that the slot is full.
func (repo *MongoBookingRepo) ensureSlotCounter(ctx context.Context, slotKey string) error {
	filter := bson.M{"slot_key": slotKey}
	update := bson.M{"$setOnInsert": bson.M{"count": 0}}
	_, err := repo.slotColl.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("slot counter creation failed: %w", err)
	}
	return nil
}

// bumpSlotCounter takes one capacity unit. The filter only matches a
// counter still below capacity, so the check and the increment are one
// atomic step; no match means the slot is full.
func (repo *MongoBookingRepo) bumpSlotCounter(ctx context.Context, slotKey string) error {
	filter := bson.M{
		"slot_key": slotKey,
		"count":    bson.M{"$lt": repo.maxPerSlot},
	}
	res, err := repo.slotColl.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"count": 1}})
	if err != nil {
		return fmt.Errorf("slot counter update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotFull
	}
	return nil
}

// InsertConfirmed commits a reservation inside a single transaction.
//
// WithTransaction re-runs the callback when competing commits conflict
// on the counter (such failures carry the TransientTransactionError
// label), so only a genuine capacity miss surfaces as ErrSlotFull.
func (repo *MongoBookingRepo) InsertConfirmed(ctx context.Context, userID, slotKey string, partySize int) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := repo.ensureSlotCounter(ctx, slotKey); err != nil {
		return nil, err
	}

	client := repo.reservationColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	result, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := repo.bumpSlotCounter(sc, slotKey); err != nil {
			return nil, err
		}

		id, err := repo.nextReservationID(sc)
		if err != nil {
			return nil, err
		}

		reservation := &models.Reservation{
			ID:        id,
			UserID:    userID,
			DateTime:  slotKey,
			PartySize: partySize,
			Status:    models.StatusConfirmed,
			CreatedAt: time.Now(),
		}
		if _, err := repo.reservationColl.InsertOne(sc, reservation); err != nil {
			return nil, fmt.Errorf("insert reservation failed: %w", err)
		}
		return reservation, nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotFull) {
			return nil, ErrSlotFull
		}
		return nil, fmt.Errorf("reservation transaction failed: %w", err)
	}

	return result.(*models.Reservation), nil
}

// CancelReservation flips a confirmed reservation to cancelled and releases
// its slot counter unit in the same transaction.
func (repo *MongoBookingRepo) CancelReservation(ctx context.Context, id int64, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.reservationColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"id":      id,
			"user_id": userID,
			"status":  models.StatusConfirmed,
		}
		update := bson.M{"$set": bson.M{"status": models.StatusCancelled}}

		var reservation models.Reservation
		err := repo.reservationColl.FindOneAndUpdate(sc, filter, update).Decode(&reservation)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("cancel update failed: %w", err)
		}

		slotFilter := bson.M{
			"slot_key": reservation.DateTime,
			"count":    bson.M{"$gt": 0},
		}
		if _, err := repo.slotColl.UpdateOne(sc, slotFilter, bson.M{"$inc": bson.M{"count": -1}}); err != nil {
			return nil, fmt.Errorf("slot counter release failed: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("cancel transaction failed: %w", err)
	}
	return nil
}
