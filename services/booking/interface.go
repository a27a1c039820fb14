package booking

import (
	"context"
	"fmt"
	"time"

	"bookly/database/repository"
	"bookly/models"
	"bookly/services/notification"

	"go.uber.org/zap"
)

// BookingCoordinator places bookings and drives their status transitions.
type BookingCoordinator interface {
	CreateBooking(ctx context.Context, actor models.Actor, in CreateBookingInput) (*models.Booking, error)
	SetStatus(ctx context.Context, bookingID string, status models.BookingStatus, actor models.Actor) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error)
	ListBookings(ctx context.Context, actor models.Actor, filter ListFilter) ([]models.Booking, error)
}

type CreateBookingInput struct {
	UserID    string // honoured for admins only; users always book for themselves
	ServiceID string
	Start     time.Time
	Address   string
	Notes     string
}

type ListFilter struct {
	ProviderID string
	UserID     string
	Status     models.BookingStatus
	Limit      int
}

// DefaultBookingCoordinator implements BookingCoordinator.
type DefaultBookingCoordinator struct {
	Services repository.ServiceRepository
	Bookings repository.BookingRepository
	Notifier notification.Notifier
	Logger   *zap.Logger
	Now      func() time.Time

	// ReminderLead is how long before an accepted booking starts the user is
	// reminded. Zero disables reminders.
	ReminderLead time.Duration
}

func NewBookingCoordinator(
	services repository.ServiceRepository,
	bookings repository.BookingRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
	reminderLead time.Duration,
) (*DefaultBookingCoordinator, error) {
	if services == nil || bookings == nil || notifier == nil || logger == nil {
		return nil, fmt.Errorf("booking coordinator initialization error: nil dependency")
	}
	return &DefaultBookingCoordinator{
		Services:     services,
		Bookings:     bookings,
		Notifier:     notifier,
		Logger:       logger,
		Now:          func() time.Time { return time.Now().UTC() },
		ReminderLead: reminderLead,
	}, nil
}
