package notification

import (
	"context"
	"time"

	"bookly/models"
)

// Sink delivers one notification to a user or provider.
type Sink interface {
	Send(ctx context.Context, n models.Notification) error
}

// ReminderScheduler is implemented by sinks that can hold a notification
// until a later instant.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, n models.Notification, at time.Time) error
}

// Notifier is what the booking coordinator talks to. Calls never block on
// delivery and never report delivery failures.
type Notifier interface {
	Notify(n models.Notification)
	ScheduleReminder(n models.Notification, at time.Time)
}
