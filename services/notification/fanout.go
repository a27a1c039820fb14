package notification

import (
	"context"
	"errors"
	"time"

	"bookly/models"
)

// Fanout sends to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Send(ctx context.Context, n models.Notification) error {
	var errs []error
	for _, s := range f {
		if err := s.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ScheduleReminder forwards to the members that can schedule.
func (f Fanout) ScheduleReminder(ctx context.Context, n models.Notification, at time.Time) error {
	var errs []error
	for _, s := range f {
		if rs, ok := s.(ReminderScheduler); ok {
			if err := rs.ScheduleReminder(ctx, n, at); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// CanSchedule reports whether any member supports reminders.
func (f Fanout) CanSchedule() bool {
	for _, s := range f {
		if _, ok := s.(ReminderScheduler); ok {
			return true
		}
	}
	return false
}
