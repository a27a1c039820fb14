package schedule

import (
	"testing"
	"time"

	"bookly/models"
)

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func clocks(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Format("15:04")
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateSlots(t *testing.T) {
	cases := []struct {
		name     string
		day      models.DaySchedule
		duration int
		want     []string
	}{
		{
			name:     "one hour block, twenty minute service",
			day:      models.DaySchedule{IsActive: true, Slots: []models.TimeBlock{{Start: "09:00", End: "10:00"}}},
			duration: 20,
			want:     []string{"09:00", "09:20", "09:40"},
		},
		{
			name:     "remainder shorter than duration is dropped",
			day:      models.DaySchedule{IsActive: true, Slots: []models.TimeBlock{{Start: "09:00", End: "10:10"}}},
			duration: 30,
			want:     []string{"09:00", "09:30"},
		},
		{
			name:     "inactive day ignores blocks",
			day:      models.DaySchedule{IsActive: false, Slots: []models.TimeBlock{{Start: "09:00", End: "17:00"}}},
			duration: 30,
			want:     []string{},
		},
		{
			name:     "active day without blocks",
			day:      models.DaySchedule{IsActive: true},
			duration: 30,
			want:     []string{},
		},
		{
			name: "lunch break keeps blocks apart",
			day: models.DaySchedule{IsActive: true, Slots: []models.TimeBlock{
				{Start: "09:00", End: "10:00"},
				{Start: "13:00", End: "14:00"},
			}},
			duration: 30,
			want:     []string{"09:00", "09:30", "13:00", "13:30"},
		},
		{
			name: "blocks processed in input order, not merged",
			day: models.DaySchedule{IsActive: true, Slots: []models.TimeBlock{
				{Start: "13:00", End: "14:00"},
				{Start: "09:00", End: "10:00"},
				{Start: "09:30", End: "10:30"},
			}},
			duration: 30,
			want:     []string{"13:00", "13:30", "09:00", "09:30", "09:30", "10:00"},
		},
		{
			name:     "block shorter than duration",
			day:      models.DaySchedule{IsActive: true, Slots: []models.TimeBlock{{Start: "09:00", End: "09:15"}}},
			duration: 30,
			want:     []string{},
		},
		{
			name:     "non-positive duration yields nothing",
			day:      models.DaySchedule{IsActive: true, Slots: []models.TimeBlock{{Start: "09:00", End: "10:00"}}},
			duration: 0,
			want:     []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clocks(GenerateSlots(tc.day, tc.duration, monday))
			if !equalStrings(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestGenerateSlotsStaysOnRequestedDate(t *testing.T) {
	day := models.DaySchedule{IsActive: true, Slots: []models.TimeBlock{{Start: "23:00", End: "23:59"}}}
	got := GenerateSlots(day, 30, monday.Add(15*time.Hour))
	if len(got) != 1 {
		t.Fatalf("expected one slot, got %d", len(got))
	}
	if got[0].Day() != 3 || got[0].Hour() != 23 {
		t.Fatalf("expected 2025-03-03 23:00, got %v", got[0])
	}
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time { return monday.Add(time.Duration(h*60+m) * time.Minute) }
	cases := []struct {
		name       string
		a, b, c, d time.Time
		want       bool
	}{
		{"partial", at(9, 0), at(9, 30), at(9, 15), at(9, 45), true},
		{"contained", at(9, 0), at(10, 0), at(9, 15), at(9, 30), true},
		{"identical", at(9, 0), at(9, 30), at(9, 0), at(9, 30), true},
		{"touching end", at(9, 0), at(9, 30), at(9, 30), at(10, 0), false},
		{"touching start", at(10, 0), at(10, 30), at(9, 30), at(10, 0), false},
		{"disjoint", at(9, 0), at(9, 30), at(11, 0), at(11, 30), false},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.a, tc.b, tc.c, tc.d); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
