package notification

import (
	"context"

	"bookly/models"

	"go.uber.org/zap"
)

// LogSink writes notifications to the structured log. Used in development and
// as the worker's fallback when no webhook is configured.
type LogSink struct {
	Logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Send(_ context.Context, n models.Notification) error {
	s.Logger.Info("Notification",
		zap.String("event", n.Event),
		zap.String("recipientID", n.RecipientID),
		zap.String("role", string(n.Role)),
		zap.String("bookingID", n.BookingID),
		zap.String("title", n.Title),
		zap.String("body", n.Body),
	)
	return nil
}
