package notification

import (
	"context"
	"sync"
	"time"

	"bookly/models"

	"go.uber.org/zap"
)

var _ Notifier = (*Dispatcher)(nil)

// Dispatcher delivers notifications on background goroutines so callers
// never wait on, or fail because of, a sink.
type Dispatcher struct {
	sink    Sink
	logger  *zap.Logger
	timeout time.Duration

	// mu orders wg.Add against Close so Add never races a Wait at zero.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sink Sink, logger *zap.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{sink: sink, logger: logger, timeout: timeout}
}

func (d *Dispatcher) Notify(n models.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	d.run(n, "send", func(ctx context.Context) error {
		return d.sink.Send(ctx, n)
	})
}

// ScheduleReminder queues n for at when the sink supports scheduling, and is
// a no-op otherwise. Reminders whose time has already passed are dropped.
func (d *Dispatcher) ScheduleReminder(n models.Notification, at time.Time) {
	rs, ok := d.sink.(ReminderScheduler)
	if !ok {
		return
	}
	if f, isFanout := d.sink.(Fanout); isFanout && !f.CanSchedule() {
		return
	}
	if !at.After(time.Now()) {
		d.logger.Debug("Skipping reminder in the past", zap.String("bookingID", n.BookingID))
		return
	}
	d.run(n, "schedule", func(ctx context.Context) error {
		return rs.ScheduleReminder(ctx, n, at)
	})
}

func (d *Dispatcher) run(n models.Notification, op string, fn func(context.Context) error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("Dispatcher closed, dropping notification",
			zap.String("event", n.Event), zap.String("bookingID", n.BookingID))
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			d.logger.Error("Notification delivery failed",
				zap.String("op", op),
				zap.String("event", n.Event),
				zap.String("recipientID", n.RecipientID),
				zap.String("bookingID", n.BookingID),
				zap.Error(err),
			)
		}
	}()
}

// Close stops accepting work and waits for in-flight deliveries or ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
