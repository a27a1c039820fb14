package notification

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Options selects and configures the sinks behind a Dispatcher.
type Options struct {
	Drivers      []string // log, queue, kafka, webhook
	Queue        *asynq.Client
	KafkaBrokers []string
	KafkaTopic   string
	WebhookURL   string
	Timeout      time.Duration
}

// BuildSink assembles the configured drivers into one sink. The returned
// closer releases any writer the sinks own.
func BuildSink(opts Options, logger *zap.Logger) (Sink, func() error, error) {
	closers := []func() error{}
	closeAll := func() error {
		var first error
		for _, c := range closers {
			if err := c(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	drivers := opts.Drivers
	if len(drivers) == 0 {
		drivers = []string{"log"}
	}

	var sinks Fanout
	for _, d := range drivers {
		switch d {
		case "log":
			sinks = append(sinks, NewLogSink(logger))
		case "queue":
			q, err := NewQueueSink(opts.Queue)
			if err != nil {
				return nil, closeAll, err
			}
			sinks = append(sinks, q)
		case "kafka":
			if len(opts.KafkaBrokers) == 0 {
				return nil, closeAll, fmt.Errorf("kafka notification driver requires KAFKA_BROKERS")
			}
			k := NewKafkaSink(NewKafkaWriter(opts.KafkaBrokers, opts.KafkaTopic))
			closers = append(closers, k.Close)
			sinks = append(sinks, k)
		case "webhook":
			w, err := NewWebhookSink(opts.WebhookURL, opts.Timeout)
			if err != nil {
				return nil, closeAll, err
			}
			sinks = append(sinks, w)
		default:
			return nil, closeAll, fmt.Errorf("unknown notification driver %q", d)
		}
	}

	logger.Info("Notification sinks configured", zap.Strings("drivers", drivers))
	if len(sinks) == 1 {
		return sinks[0], closeAll, nil
	}
	return sinks, closeAll, nil
}
