package bookingRepo

import (
	"context"
	"time"

	"bookly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ListFilter selects bookings for listing. Exactly one of ProviderID and
// UserID is normally set; Status and Limit are optional.
type ListFilter struct {
	ProviderID string
	UserID     string
	Status     models.BookingStatus
	Limit      int
}

// BookingRepository stores bookings. Bookings are never deleted.
type BookingRepository interface {
	// CreateIfFree inserts b unless a blocking booking of the same provider
	// overlaps [b.Start, b.End), in which case it returns database.ErrSlotTaken.
	// The check and the insert are atomic with respect to other CreateIfFree
	// calls for the same provider.
	CreateIfFree(ctx context.Context, b *models.Booking) error
	// FindOverlapping returns the provider's blocking bookings that overlap
	// [start, end), ordered by start.
	FindOverlapping(ctx context.Context, providerID string, start, end time.Time) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus moves a booking from one status to another only if it is
	// still in from. It returns database.ErrStatusChanged otherwise.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error)
	// List returns matching bookings, newest first.
	List(ctx context.Context, f ListFilter) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll  *mongo.Collection
	locks *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB BookingRepository. Atomic creation
// relies on multi-document transactions, so the deployment must be a replica set.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{
		coll:  db.Collection("bookings"),
		locks: db.Collection("booking_locks"),
	}
}
