package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookly/config"
	"bookly/database"
	"bookly/models"
	"bookly/services/notification"
	"bookly/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingLookup is the read the reminder handler needs to skip stale reminders.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// QueueRedisOpt points asynq at REDIS_QUEUE_DB.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Worker consumes queued notifications and booking reminders and delivers
// them through a sink.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewWorker(opt asynq.RedisClientOpt, concurrency int, deliver notification.Sink, bookings BookingLookup, logger *zap.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationSend, handleNotificationTask(deliver, logger))
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(deliver, bookings, logger))

	return &Worker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *Worker) Start() {
	go func() {
		w.logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Warn("Notification worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Notification worker gave up; queued notifications will wait")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func handleNotificationTask(deliver notification.Sink, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := tasks.ParseNotification(task)
		if err != nil {
			logger.Error("Dropping malformed notification task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := deliver.Send(ctx, n); err != nil {
			logger.Warn("Notification delivery failed, will retry",
				zap.String("event", n.Event), zap.String("bookingID", n.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

// handleReminderTask delivers a reminder only while its booking is still
// accepted; bookings cancelled after the reminder was queued are skipped.
func handleReminderTask(deliver notification.Sink, bookings BookingLookup, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := tasks.ParseNotification(task)
		if err != nil {
			logger.Error("Dropping malformed reminder task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, n.BookingID)
		if errors.Is(err, database.ErrNotFound) {
			logger.Warn("Reminder for unknown booking", zap.String("bookingID", n.BookingID))
			return nil
		}
		if err != nil {
			return err
		}
		if b.Status != models.BookingAccepted {
			logger.Info("Skipping reminder",
				zap.String("bookingID", b.ID), zap.String("status", string(b.Status)))
			return nil
		}

		logger.Info("Sending booking reminder", zap.String("bookingID", b.ID), zap.String("userID", n.RecipientID))
		return deliver.Send(ctx, n)
	}
}
