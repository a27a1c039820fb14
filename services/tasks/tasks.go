package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"bookly/models"

	"github.com/hibiken/asynq"
)

const (
	TypeNotificationSend = "notification:send"
	TypeBookingReminder  = "booking:reminder"
)

// NewNotificationTask wraps a notification for immediate delivery by the worker.
func NewNotificationTask(n models.Notification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationSend, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	return task, opts, nil
}

// NewReminderTask schedules n for fireAt. The task ID is derived from the
// booking so accepting a booking twice cannot queue two reminders.
func NewReminderTask(n models.Notification, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	if n.BookingID == "" {
		return nil, nil, fmt.Errorf("reminder task requires a booking id")
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(n.BookingID)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

func ReminderTaskID(bookingID string) string {
	return "reminder:" + bookingID
}

// ParseNotification decodes the payload of either task type.
func ParseNotification(t *asynq.Task) (models.Notification, error) {
	var n models.Notification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		return n, fmt.Errorf("invalid %s payload: %w", t.Type(), err)
	}
	return n, nil
}
