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

	"go.uber.org/zap"
)

// ScheduleService owns provider availability documents.
type ScheduleService interface {
	GetAvailability(ctx context.Context, providerID string) (*models.Availability, error)
	ViewAvailability(ctx context.Context, providerID string) (*models.Availability, error)
	SetAvailability(ctx context.Context, providerID string, days map[models.Weekday]models.DaySchedule, customDates []models.CustomDateOverride) (*models.Availability, error)
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Repo   repository.AvailabilityRepository
	Logger *zap.Logger
	Now    func() time.Time
}

func NewScheduleService(repo repository.AvailabilityRepository, logger *zap.Logger) (*DefaultScheduleService, error) {
	if repo == nil || logger == nil {
		return nil, fmt.Errorf("schedule service initialization error: repository or logger is nil")
	}
	return &DefaultScheduleService{
		Repo:   repo,
		Logger: logger,
		Now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// GetAvailability returns the provider's document, creating the closed
// default on first read.
func (s *DefaultScheduleService) GetAvailability(ctx context.Context, providerID string) (*models.Availability, error) {
	if providerID == "" {
		return nil, errs.Validation("providerId", "is required")
	}

	av, err := s.Repo.GetByProviderID(ctx, providerID)
	if err == nil {
		return av, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("get availability: %w", err)
	}

	av, err = s.Repo.CreateIfAbsent(ctx, models.DefaultAvailability(providerID, s.Now()))
	if err != nil {
		return nil, fmt.Errorf("create default availability: %w", err)
	}
	s.Logger.Info("Created default availability", zap.String("providerID", providerID))
	return av, nil
}

// ViewAvailability is the read-only form of GetAvailability: a provider
// without a document is shown the closed default, which is not stored.
func (s *DefaultScheduleService) ViewAvailability(ctx context.Context, providerID string) (*models.Availability, error) {
	if providerID == "" {
		return nil, errs.Validation("providerId", "is required")
	}

	av, err := s.Repo.GetByProviderID(ctx, providerID)
	if errors.Is(err, database.ErrNotFound) {
		return models.DefaultAvailability(providerID, s.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	return av, nil
}

// SetAvailability validates the full weekly map and override list and
// replaces the stored document with them. Nothing is written if any field is invalid.
func (s *DefaultScheduleService) SetAvailability(
	ctx context.Context,
	providerID string,
	days map[models.Weekday]models.DaySchedule,
	customDates []models.CustomDateOverride,
) (*models.Availability, error) {
	if providerID == "" {
		return nil, errs.Validation("providerId", "is required")
	}

	normDays, err := normalizeDays(days)
	if err != nil {
		return nil, err
	}
	normOverrides, err := normalizeOverrides(customDates)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	stored, err := s.Repo.Upsert(ctx, &models.Availability{
		ProviderID:  providerID,
		Days:        normDays,
		CustomDates: normOverrides,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert availability: %w", err)
	}

	s.Logger.Info("Availability updated",
		zap.String("providerID", providerID),
		zap.Int("overrides", len(normOverrides)),
	)
	return stored, nil
}

// normalizeDays validates every weekday and fills missing ones as closed.
func normalizeDays(days map[models.Weekday]models.DaySchedule) (map[models.Weekday]models.DaySchedule, error) {
	if days == nil {
		return nil, errs.Validation("days", "is required")
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !models.Weekday(k).Valid() {
			return nil, errs.Validation("days."+k, "is not a weekday name")
		}
	}

	out := make(map[models.Weekday]models.DaySchedule, len(models.Weekdays))
	for _, wd := range models.Weekdays {
		day, ok := days[wd]
		if !ok {
			out[wd] = models.DaySchedule{IsActive: false, Slots: []models.TimeBlock{}}
			continue
		}
		norm, err := validateDay("days."+string(wd), day)
		if err != nil {
			return nil, err
		}
		out[wd] = norm
	}
	return out, nil
}

// normalizeOverrides validates each override and keeps one per date; a later
// entry for the same date replaces the earlier one in place.
func normalizeOverrides(overrides []models.CustomDateOverride) ([]models.CustomDateOverride, error) {
	out := make([]models.CustomDateOverride, 0, len(overrides))
	index := make(map[string]int, len(overrides))

	for i, o := range overrides {
		field := fmt.Sprintf("customDates[%d]", i)
		if _, err := ParseDate(o.Date); err != nil {
			return nil, errs.Validation(field+".date", "%v", err)
		}
		day, err := validateDay(field, o.DaySchedule)
		if err != nil {
			return nil, err
		}

		norm := models.CustomDateOverride{Date: o.Date, DaySchedule: day}
		if j, seen := index[o.Date]; seen {
			out[j] = norm
			continue
		}
		index[o.Date] = len(out)
		out = append(out, norm)
	}
	return out, nil
}

func validateDay(field string, day models.DaySchedule) (models.DaySchedule, error) {
	blocks := make([]models.TimeBlock, 0, len(day.Slots))
	for i, b := range day.Slots {
		blockField := fmt.Sprintf("%s.slots[%d]", field, i)
		start, err := ParseClock(b.Start)
		if err != nil {
			return models.DaySchedule{}, errs.Validation(blockField+".start", "%v", err)
		}
		end, err := ParseClock(b.End)
		if err != nil {
			return models.DaySchedule{}, errs.Validation(blockField+".end", "%v", err)
		}
		if start >= end {
			return models.DaySchedule{}, errs.Validation(blockField, "start %s must be before end %s", b.Start, b.End)
		}
		blocks = append(blocks, b)
	}
	return models.DaySchedule{IsActive: day.IsActive, Slots: blocks}, nil
}
