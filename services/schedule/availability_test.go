package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookly/database"
	"bookly/database/repository/memory"
	"bookly/models"
	"bookly/services/errs"

	"go.uber.org/zap"
)

func newScheduleService(t *testing.T) (*DefaultScheduleService, *memory.AvailabilityStore) {
	t.Helper()
	store := memory.NewAvailabilityStore()
	svc, err := NewScheduleService(store, zap.NewNop())
	if err != nil {
		t.Fatalf("new schedule service: %v", err)
	}
	svc.Now = func() time.Time { return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestGetAvailabilityCreatesDefault(t *testing.T) {
	svc, store := newScheduleService(t)
	ctx := context.Background()

	av, err := svc.GetAvailability(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(av.Days) != 7 {
		t.Fatalf("expected seven weekdays, got %d", len(av.Days))
	}
	for _, wd := range models.Weekdays {
		d := av.Days[wd]
		if d.IsActive || len(d.Slots) != 1 || d.Slots[0].Start != "09:00" || d.Slots[0].End != "17:00" {
			t.Fatalf("%s: expected inactive 09:00-17:00 default, got %+v", wd, d)
		}
	}
	if _, err := store.GetByProviderID(ctx, "p1"); err != nil {
		t.Fatalf("expected default to be persisted, got %v", err)
	}
}

func TestViewAvailabilityDoesNotPersist(t *testing.T) {
	svc, store := newScheduleService(t)
	ctx := context.Background()

	av, err := svc.ViewAvailability(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(av.Days) != 7 || av.Days[models.Monday].IsActive {
		t.Fatalf("expected closed default, got %+v", av.Days)
	}
	if _, err := store.GetByProviderID(ctx, "p1"); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected nothing stored, got %v", err)
	}

	if _, err := svc.SetAvailability(ctx, "p1", map[models.Weekday]models.DaySchedule{
		models.Monday: openDay(models.TimeBlock{Start: "10:00", End: "11:00"}),
	}, nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	av, err = svc.ViewAvailability(ctx, "p1")
	if err != nil || !av.Days[models.Monday].IsActive {
		t.Fatalf("expected stored document, got %+v, %v", av, err)
	}
}

func TestGetAvailabilityKeepsExisting(t *testing.T) {
	svc, _ := newScheduleService(t)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, "p1", map[models.Weekday]models.DaySchedule{
		models.Tuesday: openDay(models.TimeBlock{Start: "08:00", End: "12:00"}),
	}, nil)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	av, _ := svc.GetAvailability(ctx, "p1")
	if !av.Days[models.Tuesday].IsActive {
		t.Fatalf("lazy default must not overwrite a stored document")
	}
}

func TestSetAvailabilityValidation(t *testing.T) {
	cases := []struct {
		name      string
		days      map[models.Weekday]models.DaySchedule
		overrides []models.CustomDateOverride
		field     string
	}{
		{
			name:  "missing days",
			days:  nil,
			field: "days",
		},
		{
			name:  "unknown weekday",
			days:  map[models.Weekday]models.DaySchedule{"funday": openDay()},
			field: "days.funday",
		},
		{
			name:  "malformed start",
			days:  map[models.Weekday]models.DaySchedule{models.Monday: openDay(models.TimeBlock{Start: "9am", End: "10:00"})},
			field: "days.monday.slots[0].start",
		},
		{
			name: "end before start in second block",
			days: map[models.Weekday]models.DaySchedule{models.Friday: openDay(
				models.TimeBlock{Start: "09:00", End: "10:00"},
				models.TimeBlock{Start: "15:00", End: "14:00"},
			)},
			field: "days.friday.slots[1]",
		},
		{
			name:  "inactive days are validated too",
			days:  map[models.Weekday]models.DaySchedule{models.Sunday: {IsActive: false, Slots: []models.TimeBlock{{Start: "10:00", End: "24:00"}}}},
			field: "days.sunday.slots[0].end",
		},
		{
			name:      "bad override date",
			days:      map[models.Weekday]models.DaySchedule{},
			overrides: []models.CustomDateOverride{{Date: "2025/03/03", DaySchedule: openDay()}},
			field:     "customDates[0].date",
		},
		{
			name: "bad override block",
			days: map[models.Weekday]models.DaySchedule{},
			overrides: []models.CustomDateOverride{
				{Date: "2025-03-03", DaySchedule: openDay(models.TimeBlock{Start: "10:00", End: "10:00"})},
			},
			field: "customDates[0].slots[0]",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newScheduleService(t)
			_, err := svc.SetAvailability(context.Background(), "p1", tc.days, tc.overrides)
			if errs.KindOf(err) != errs.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if got := errs.FieldOf(err); got != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, got)
			}
			if _, getErr := store.GetByProviderID(context.Background(), "p1"); getErr == nil {
				t.Fatalf("nothing may be written when validation fails")
			}
		})
	}
}

func TestSetAvailabilityReplacesWholeDocument(t *testing.T) {
	svc, _ := newScheduleService(t)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, "p1",
		map[models.Weekday]models.DaySchedule{models.Monday: openDay(models.TimeBlock{Start: "09:00", End: "12:00"})},
		[]models.CustomDateOverride{{Date: "2025-03-10", DaySchedule: openDay(models.TimeBlock{Start: "10:00", End: "11:00"})}},
	)
	if err != nil {
		t.Fatalf("first set: %v", err)
	}

	av, err := svc.SetAvailability(ctx, "p1",
		map[models.Weekday]models.DaySchedule{models.Wednesday: openDay(models.TimeBlock{Start: "14:00", End: "18:00"})},
		nil,
	)
	if err != nil {
		t.Fatalf("second set: %v", err)
	}
	if av.Days[models.Monday].IsActive {
		t.Fatalf("monday should be replaced by a closed day")
	}
	if !av.Days[models.Wednesday].IsActive {
		t.Fatalf("wednesday should be open")
	}
	if len(av.CustomDates) != 0 {
		t.Fatalf("overrides should be replaced, got %+v", av.CustomDates)
	}
	if len(av.Days) != 7 {
		t.Fatalf("missing weekdays should be filled, got %d", len(av.Days))
	}
}

func TestSetAvailabilityOneOverridePerDate(t *testing.T) {
	svc, _ := newScheduleService(t)
	av, err := svc.SetAvailability(context.Background(), "p1",
		map[models.Weekday]models.DaySchedule{},
		[]models.CustomDateOverride{
			{Date: "2025-03-10", DaySchedule: openDay(models.TimeBlock{Start: "10:00", End: "11:00"})},
			{Date: "2025-03-11", DaySchedule: models.DaySchedule{IsActive: false}},
			{Date: "2025-03-10", DaySchedule: openDay(models.TimeBlock{Start: "12:00", End: "13:00"})},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(av.CustomDates) != 2 {
		t.Fatalf("expected two overrides, got %d", len(av.CustomDates))
	}
	o, _ := av.Override("2025-03-10")
	if o.Slots[0].Start != "12:00" {
		t.Fatalf("expected the last entry for a date to win, got %+v", o)
	}
}
