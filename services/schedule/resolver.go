package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bookly/database"
	"bookly/database/repository"
	"bookly/models"
	"bookly/services/errs"
)

// AvailabilityResolver joins schedules and bookings into open slots.
type AvailabilityResolver struct {
	Services     repository.ServiceRepository
	Availability repository.AvailabilityRepository
	Bookings     repository.BookingRepository
}

func NewAvailabilityResolver(
	services repository.ServiceRepository,
	availability repository.AvailabilityRepository,
	bookings repository.BookingRepository,
) (*AvailabilityResolver, error) {
	if services == nil || availability == nil || bookings == nil {
		return nil, fmt.Errorf("availability resolver initialization error: nil repository")
	}
	return &AvailabilityResolver{Services: services, Availability: availability, Bookings: bookings}, nil
}

// LoadSchedulableService fetches a service and checks it can be booked into slots.
func LoadSchedulableService(ctx context.Context, services repository.ServiceRepository, serviceID string) (*models.Service, error) {
	if serviceID == "" {
		return nil, errs.Validation("serviceId", "is required")
	}
	svc, err := services.GetByID(ctx, serviceID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, errs.NotFound("service %s not found", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}
	if !svc.Schedulable() {
		return nil, errs.NotSchedulable("service %s is not bookable", serviceID)
	}
	if svc.ProviderID == "" {
		return nil, errs.NotFound("provider for service %s not found", serviceID)
	}
	return svc, nil
}

// EffectiveDay picks the schedule that applies on date: an override for the
// exact calendar date wins outright, otherwise the weekly entry for its weekday.
func EffectiveDay(av *models.Availability, date time.Time) models.DaySchedule {
	if o, ok := av.Override(FormatDate(date)); ok {
		return o.DaySchedule
	}
	return av.Days[WeekdayOf(date)]
}

// OpenSlots lists the bookable windows of a service on a calendar date, in
// chronological order. A provider without availability, or closed that day,
// has no slots; that is not an error.
func (r *AvailabilityResolver) OpenSlots(ctx context.Context, serviceID string, date time.Time) (*models.OpenSlotsResponse, error) {
	svc, err := LoadSchedulableService(ctx, r.Services, serviceID)
	if err != nil {
		return nil, err
	}

	day := DateOf(date)
	resp := &models.OpenSlotsResponse{
		ServiceID:  svc.ID,
		ProviderID: svc.ProviderID,
		Date:       FormatDate(day),
		Slots:      []models.Slot{},
	}

	av, err := r.Availability.GetByProviderID(ctx, svc.ProviderID)
	if errors.Is(err, database.ErrNotFound) {
		return resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}

	schedule := EffectiveDay(av, day)
	if !schedule.Open() {
		return resp, nil
	}

	candidates := uniqueSorted(GenerateSlots(schedule, svc.DurationMinutes, day))
	if len(candidates) == 0 {
		return resp, nil
	}

	booked, err := r.Bookings.FindOverlapping(ctx, svc.ProviderID, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	dur := svc.Duration()
	for _, start := range candidates {
		end := start.Add(dur)
		if !overlapsAny(start, end, booked) {
			resp.Slots = append(resp.Slots, models.Slot{Start: start, End: end})
		}
	}
	return resp, nil
}

func overlapsAny(start, end time.Time, bookings []models.Booking) bool {
	for _, b := range bookings {
		if b.Status.Blocking() && Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// uniqueSorted orders candidates chronologically and drops repeated instants,
// which only arise from overlapping blocks.
func uniqueSorted(in []time.Time) []time.Time {
	sort.Slice(in, func(i, j int) bool { return in[i].Before(in[j]) })
	out := in[:0]
	for _, t := range in {
		if len(out) > 0 && t.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, t)
	}
	return out
}
