package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookly/database"
	"bookly/database/repository"
	"bookly/models"
	"bookly/services/errs"
	"bookly/services/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ BookingCoordinator = (*DefaultBookingCoordinator)(nil)

const maxListLimit = 500

// CreateBooking reserves [start, start+duration) with the service's provider.
// The overlap check and insert happen atomically in the store; losing a race
// surfaces as a Conflict.
func (c *DefaultBookingCoordinator) CreateBooking(ctx context.Context, actor models.Actor, in CreateBookingInput) (*models.Booking, error) {
	userID, err := bookingUser(actor, in.UserID)
	if err != nil {
		return nil, err
	}

	svc, err := schedule.LoadSchedulableService(ctx, c.Services, in.ServiceID)
	if err != nil {
		return nil, err
	}

	now := c.Now()
	start, err := validateStart(in.Start, now)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProviderID: svc.ProviderID,
		ServiceID:  svc.ID,
		Start:      start,
		End:        start.Add(svc.Duration()),
		Status:     models.BookingPending,
		Address:    in.Address,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.Bookings.CreateIfFree(ctx, b); err != nil {
		if errors.Is(err, database.ErrSlotTaken) {
			c.Logger.Info("Booking rejected, slot taken",
				zap.String("providerID", b.ProviderID),
				zap.Time("start", b.Start),
			)
			return nil, errs.Conflict("slot no longer available")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	c.Logger.Info("Booking created",
		zap.String("bookingID", b.ID),
		zap.String("providerID", b.ProviderID),
		zap.String("userID", b.UserID),
		zap.Time("start", b.Start),
	)
	c.Notifier.Notify(bookingCreatedMessage(b))
	return b, nil
}

func bookingUser(actor models.Actor, requested string) (string, error) {
	switch actor.Role {
	case models.RoleUser:
		if actor.ID == "" {
			return "", errs.Authorization("missing user identity")
		}
		if requested != "" && requested != actor.ID {
			return "", errs.Authorization("users can only book for themselves")
		}
		return actor.ID, nil
	case models.RoleAdmin:
		if requested == "" {
			return "", errs.Validation("userId", "is required when booking on behalf of a user")
		}
		return requested, nil
	}
	return "", errs.Authorization("only users can create bookings")
}

func validateStart(start, now time.Time) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, errs.Validation("start", "is required")
	}
	start = start.UTC()
	if !start.Truncate(time.Minute).Equal(start) {
		return time.Time{}, errs.Validation("start", "must be on a whole minute")
	}
	if !start.After(now) {
		return time.Time{}, errs.Validation("start", "must be in the future")
	}
	return start, nil
}

// SetStatus moves a booking along the state table. The write is a
// compare-and-set on the status that was read, so of two concurrent
// transitions only one wins; the other gets a Conflict.
func (c *DefaultBookingCoordinator) SetStatus(ctx context.Context, bookingID string, status models.BookingStatus, actor models.Actor) (*models.Booking, error) {
	if !status.Valid() {
		return nil, errs.Validation("status", "unknown status %q", status)
	}

	current, err := c.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canActorTransition(actor, current, status) {
		return nil, errs.Authorization("not allowed to set booking %s to %s", bookingID, status)
	}
	if !CanTransition(current.Status, status) {
		return nil, errs.Validation("status", "cannot move booking from %s to %s", current.Status, status)
	}

	updated, err := c.Bookings.UpdateStatus(ctx, bookingID, current.Status, status, c.Now())
	switch {
	case errors.Is(err, database.ErrStatusChanged):
		return nil, errs.Conflict("booking %s was updated concurrently", bookingID)
	case errors.Is(err, database.ErrNotFound):
		return nil, errs.NotFound("booking %s not found", bookingID)
	case err != nil:
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	c.Logger.Info("Booking status updated",
		zap.String("bookingID", bookingID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
		zap.String("actorRole", string(actor.Role)),
	)

	c.Notifier.Notify(statusChangedMessage(updated))
	if status == models.BookingCancelled && actor.Is(models.RoleUser, updated.UserID) {
		c.Notifier.Notify(cancelledByUserMessage(updated))
	}
	if status == models.BookingAccepted && c.ReminderLead > 0 {
		c.Notifier.ScheduleReminder(reminderMessage(updated), updated.Start.Add(-c.ReminderLead))
	}
	return updated, nil
}

func (c *DefaultBookingCoordinator) GetBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error) {
	b, err := c.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, b) {
		return nil, errs.Authorization("not allowed to view booking %s", bookingID)
	}
	return b, nil
}

// ListBookings returns bookings for a provider or a user, newest first. Users
// and providers are pinned to their own bookings.
func (c *DefaultBookingCoordinator) ListBookings(ctx context.Context, actor models.Actor, filter ListFilter) ([]models.Booking, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errs.Validation("status", "unknown status %q", filter.Status)
	}

	switch actor.Role {
	case models.RoleUser:
		if filter.UserID != "" && filter.UserID != actor.ID {
			return nil, errs.Authorization("users can only list their own bookings")
		}
		filter.UserID = actor.ID
	case models.RoleProvider:
		if filter.ProviderID != "" && filter.ProviderID != actor.ID {
			return nil, errs.Authorization("providers can only list their own bookings")
		}
		filter.ProviderID = actor.ID
	case models.RoleAdmin:
		if filter.ProviderID == "" && filter.UserID == "" {
			return nil, errs.Validation("providerId", "providerId or userId is required")
		}
	default:
		return nil, errs.Authorization("unknown role %q", actor.Role)
	}

	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	list, err := c.Bookings.List(ctx, repository.BookingListFilter{
		ProviderID: filter.ProviderID,
		UserID:     filter.UserID,
		Status:     filter.Status,
		Limit:      filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

func (c *DefaultBookingCoordinator) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, errs.Validation("bookingId", "is required")
	}
	b, err := c.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, errs.NotFound("booking %s not found", bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}
