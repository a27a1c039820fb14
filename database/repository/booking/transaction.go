package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookly/database"
	"bookly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIfFree serialises creations per provider through a lock document in
// booking_locks. Every transaction writes the provider's lock document before
// it reads, so two concurrent transactions for one provider write-conflict;
// the driver retries the loser, which then sees the winner's booking.
func (r *mongoBookingRepo) CreateIfFree(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := r.ensureLockDocument(ctx, b.ProviderID); err != nil {
		return err
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		lockUpdate := bson.M{
			"$inc": bson.M{"version": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		}
		if _, err := r.locks.UpdateOne(sc, bson.M{"_id": b.ProviderID}, lockUpdate); err != nil {
			return nil, fmt.Errorf("acquire provider lock failed: %w", err)
		}

		n, err := r.coll.CountDocuments(sc, overlapFilter(b.ProviderID, b.Start, b.End))
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return nil, database.ErrSlotTaken
		}

		if _, err := r.coll.InsertOne(sc, b); err != nil {
			return nil, fmt.Errorf("insert booking failed: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, database.ErrSlotTaken) {
			return database.ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// ensureLockDocument creates the provider's lock document outside any
// transaction, so the transactional path only ever updates it.
func (r *mongoBookingRepo) ensureLockDocument(ctx context.Context, providerID string) error {
	update := bson.M{"$setOnInsert": bson.M{"version": 0, "createdAt": time.Now().UTC()}}
	opts := options.Update().SetUpsert(true)

	_, err := r.locks.UpdateOne(ctx, bson.M{"_id": providerID}, update, opts)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Lost the upsert race; the document exists now.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to ensure booking lock for provider %s: %w", providerID, err)
	}
	return nil
}
