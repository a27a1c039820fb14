package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookly/database"
	bookingRepo "bookly/database/repository/booking"
	"bookly/models"
)

var _ bookingRepo.BookingRepository = (*BookingStore)(nil)

// BookingStore keeps bookings in insertion order behind one mutex, which makes
// CreateIfFree trivially atomic.
type BookingStore struct {
	mu       sync.RWMutex
	bookings []models.Booking
	byID     map[string]int
}

func NewBookingStore() *BookingStore {
	return &BookingStore{byID: make(map[string]int)}
}

func (s *BookingStore) CreateIfFree(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.overlapping(b.ProviderID, b.Start, b.End)) > 0 {
		return database.ErrSlotTaken
	}
	s.byID[b.ID] = len(s.bookings)
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *BookingStore) FindOverlapping(_ context.Context, providerID string, start, end time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.overlapping(providerID, start, end)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *BookingStore) overlapping(providerID string, start, end time.Time) []models.Booking {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.ProviderID != providerID || !b.Status.Blocking() {
			continue
		}
		if b.Start.Before(end) && start.Before(b.End) {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	b := s.bookings[i]
	return &b, nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if s.bookings[i].Status != from {
		return nil, database.ErrStatusChanged
	}
	s.bookings[i].Status = to
	s.bookings[i].UpdatedAt = at
	b := s.bookings[i]
	return &b, nil
}

func (s *BookingStore) List(_ context.Context, f bookingRepo.ListFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	// Walk backwards so equal CreatedAt values still come out newest first.
	for i := len(s.bookings) - 1; i >= 0; i-- {
		b := s.bookings[i]
		if f.ProviderID != "" && b.ProviderID != f.ProviderID {
			continue
		}
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
