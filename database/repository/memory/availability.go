// Package memory provides in-process implementations of the repositories,
// used when STORAGE_DRIVER=memory and as fakes in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"bookly/database"
	availabilityRepo "bookly/database/repository/availability"
	"bookly/models"
)

var _ availabilityRepo.AvailabilityRepository = (*AvailabilityStore)(nil)

type AvailabilityStore struct {
	mu   sync.RWMutex
	docs map[string]models.Availability
}

func NewAvailabilityStore() *AvailabilityStore {
	return &AvailabilityStore{docs: make(map[string]models.Availability)}
}

func (s *AvailabilityStore) GetByProviderID(_ context.Context, providerID string) (*models.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	av, ok := s.docs[providerID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return cloneAvailability(av), nil
}

func (s *AvailabilityStore) Upsert(_ context.Context, av *models.Availability) (*models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *cloneAvailability(*av)
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	}
	if prev, ok := s.docs[av.ProviderID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = stored.UpdatedAt
	}
	s.docs[av.ProviderID] = stored
	return cloneAvailability(stored), nil
}

func (s *AvailabilityStore) CreateIfAbsent(_ context.Context, av *models.Availability) (*models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.docs[av.ProviderID]; ok {
		return cloneAvailability(existing), nil
	}
	stored := *cloneAvailability(*av)
	s.docs[av.ProviderID] = stored
	return cloneAvailability(stored), nil
}

// cloneAvailability deep-copies av so callers never share maps or slices with the store.
func cloneAvailability(av models.Availability) *models.Availability {
	out := av
	out.Days = make(map[models.Weekday]models.DaySchedule, len(av.Days))
	for k, d := range av.Days {
		out.Days[k] = cloneDay(d)
	}
	out.CustomDates = make([]models.CustomDateOverride, len(av.CustomDates))
	for i, o := range av.CustomDates {
		out.CustomDates[i] = models.CustomDateOverride{Date: o.Date, DaySchedule: cloneDay(o.DaySchedule)}
	}
	return &out
}

func cloneDay(d models.DaySchedule) models.DaySchedule {
	return models.DaySchedule{
		IsActive: d.IsActive,
		Slots:    append([]models.TimeBlock(nil), d.Slots...),
	}
}
