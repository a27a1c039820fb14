package serviceRepo

import (
	"context"

	"bookly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceRepository is the catalog of bookable services.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Service, error)
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a MongoDB ServiceRepository.
func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	return &mongoServiceRepo{coll: db.Collection("services")}
}
