package availabilityRepo

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

func (r *mongoAvailabilityRepo) GetByProviderID(ctx context.Context, providerID string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var av models.Availability
	err := r.coll.FindOne(ctx, bson.M{"providerId": providerID}).Decode(&av)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for provider %s: %w", providerID, err)
	}
	return &av, nil
}

func (r *mongoAvailabilityRepo) Upsert(ctx context.Context, av *models.Availability) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := av.UpdatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	createdAt := av.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	filter := bson.M{"providerId": av.ProviderID}
	update := bson.M{
		"$set": bson.M{
			"days":        av.Days,
			"customDates": av.CustomDates,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"providerId": av.ProviderID,
			"createdAt":  createdAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.Availability
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to upsert availability for provider %s: %w", av.ProviderID, err)
	}
	return &stored, nil
}

func (r *mongoAvailabilityRepo) CreateIfAbsent(ctx context.Context, av *models.Availability) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": av.ProviderID}
	update := bson.M{"$setOnInsert": av}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.Availability
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent creator won; read its document.
		return r.GetByProviderID(ctx, av.ProviderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create availability for provider %s: %w", av.ProviderID, err)
	}
	return &stored, nil
}
