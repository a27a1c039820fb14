package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookly/models"
	"bookly/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueSink hands notifications to the asynq worker, which performs the
// actual delivery with retries.
type QueueSink struct {
	Client *asynq.Client
}

func NewQueueSink(client *asynq.Client) (*QueueSink, error) {
	if client == nil {
		return nil, fmt.Errorf("queue sink initialization error: asynq client is nil")
	}
	return &QueueSink{Client: client}, nil
}

func (s *QueueSink) Send(ctx context.Context, n models.Notification) error {
	task, opts, err := tasks.NewNotificationTask(n)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

func (s *QueueSink) ScheduleReminder(ctx context.Context, n models.Notification, at time.Time) error {
	task, opts, err := tasks.NewReminderTask(n, at)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}
