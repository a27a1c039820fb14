package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Overlap checks: provider + status + interval.
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}, {Key: "bookingStart", Value: 1}},
			Options: options.Index().SetName("provider_status_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("provider_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
	}

	if _, err := db.Collection("bookings").Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
