package schedule

import (
	"fmt"
	"time"

	"bookly/models"
)

// DateLayout is the calendar-date format used for dates and override keys.
const DateLayout = "2006-01-02"

// minutesPerDay bounds a time of day: valid values are [0, minutesPerDay).
const minutesPerDay = 24 * 60

// ParseClock turns "HH:MM" into minutes since midnight. Only 00:00-23:59 is accepted.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("time %q is not in HH:MM form", s)
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	if !okH || !okM {
		return 0, fmt.Errorf("time %q is not in HH:MM form", s)
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("time %q is out of range", s)
	}
	return h*60 + m, nil
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD form", s)
	}
	return d, nil
}

// DateOf returns the UTC calendar date containing t, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// At returns the instant minutes after midnight UTC on the calendar date of date.
func At(date time.Time, minutes int) time.Time {
	return DateOf(date).Add(time.Duration(minutes) * time.Minute)
}

var weekdayNames = [...]models.Weekday{
	time.Sunday:    models.Sunday,
	time.Monday:    models.Monday,
	time.Tuesday:   models.Tuesday,
	time.Wednesday: models.Wednesday,
	time.Thursday:  models.Thursday,
	time.Friday:    models.Friday,
	time.Saturday:  models.Saturday,
}

// WeekdayOf names the day of week of date's UTC calendar date.
func WeekdayOf(date time.Time) models.Weekday {
	return weekdayNames[date.UTC().Weekday()]
}
