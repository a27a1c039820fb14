package models

import "time"

// Weekday is the lowercase day name used to key Availability.Days.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists every valid key of Availability.Days, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether w is one of the seven day names.
func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// TimeBlock is an open window within one day, both ends as "HH:MM".
type TimeBlock struct {
	Start string `bson:"start" json:"start"` // inclusive
	End   string `bson:"end" json:"end"`     // exclusive
}

// DaySchedule is the open/closed state and blocks of a single day.
type DaySchedule struct {
	IsActive bool        `bson:"isActive" json:"isActive"`
	Slots    []TimeBlock `bson:"slots" json:"slots"`
}

// Open reports whether the day can yield any candidate slot at all.
func (d DaySchedule) Open() bool {
	return d.IsActive && len(d.Slots) > 0
}

// CustomDateOverride replaces the weekly schedule for one calendar date.
type CustomDateOverride struct {
	Date        string `bson:"date" json:"date"` // "2006-01-02"
	DaySchedule `bson:",inline"`
}

// Availability is a provider's weekly recurring schedule plus per-date overrides.
type Availability struct {
	ProviderID  string                  `bson:"providerId" json:"providerId"`
	Days        map[Weekday]DaySchedule `bson:"days" json:"days"`
	CustomDates []CustomDateOverride    `bson:"customDates" json:"customDates"`
	CreatedAt   time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// Override returns the override registered for date, if any.
func (a *Availability) Override(date string) (CustomDateOverride, bool) {
	for _, o := range a.CustomDates {
		if o.Date == date {
			return o, true
		}
	}
	return CustomDateOverride{}, false
}

const (
	DefaultDayStart = "09:00"
	DefaultDayEnd   = "17:00"
)

// DefaultAvailability is what a provider gets before configuring anything:
// every day closed, each holding a single 09:00-17:00 block.
func DefaultAvailability(providerID string, now time.Time) *Availability {
	days := make(map[Weekday]DaySchedule, len(Weekdays))
	for _, d := range Weekdays {
		days[d] = DaySchedule{
			IsActive: false,
			Slots:    []TimeBlock{{Start: DefaultDayStart, End: DefaultDayEnd}},
		}
	}
	return &Availability{
		ProviderID:  providerID,
		Days:        days,
		CustomDates: []CustomDateOverride{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetAvailabilityRequest is the body of PUT /api/providers/:providerID/availability.
type SetAvailabilityRequest struct {
	Days        map[Weekday]DaySchedule `json:"days" binding:"required"`
	CustomDates []CustomDateOverride    `json:"customDates"`
}
