package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches blocking bookings of providerID intersecting [start, end).
func overlapFilter(providerID string, start, end time.Time) bson.M {
	return bson.M{
		"providerId":   providerID,
		"status":       bson.M{"$in": models.BlockingStatuses},
		"bookingStart": bson.M{"$lt": end},
		"bookingEnd":   bson.M{"$gt": start},
	}
}

func (r *mongoBookingRepo) FindOverlapping(ctx context.Context, providerID string, start, end time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "bookingStart", Value: 1}})
	cursor, err := r.coll.Find(ctx, overlapFilter(providerID, start, end), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) List(ctx context.Context, f ListFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.ProviderID != "" {
		filter["providerId"] = f.ProviderID
	}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
