package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"bookly/models"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the sink uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes notifications as booking events keyed by booking ID,
// so every event for one booking lands on the same partition in order.
type KafkaSink struct {
	Writer MessageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaSink(w MessageWriter) *KafkaSink {
	return &KafkaSink{Writer: w}
}

func (s *KafkaSink) Send(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(n.BookingID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(n.Event)},
			{Key: "recipient_role", Value: []byte(n.Role)},
		},
	}
	if err := s.Writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", n.Event, err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.Writer.Close()
}
