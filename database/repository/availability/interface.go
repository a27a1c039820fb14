package availabilityRepo

import (
	"context"

	"bookly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository stores one Availability document per provider.
type AvailabilityRepository interface {
	// GetByProviderID returns database.ErrNotFound when the provider has no document.
	GetByProviderID(ctx context.Context, providerID string) (*models.Availability, error)
	// Upsert replaces days and customDates of the provider's document as one write,
	// creating it if needed, and returns the stored result.
	Upsert(ctx context.Context, av *models.Availability) (*models.Availability, error)
	// CreateIfAbsent stores av only if the provider has no document yet and
	// returns whichever document is stored afterwards.
	CreateIfAbsent(ctx context.Context, av *models.Availability) (*models.Availability, error)
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo(db *mongo.Database) AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: db.Collection("availabilities"),
	}
}
