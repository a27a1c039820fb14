package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bookly/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu        sync.Mutex
	sent      []models.Notification
	scheduled []time.Time
	err       error
}

func (r *recordingSink) Send(_ context.Context, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingSink) ScheduleReminder(_ context.Context, _ models.Notification, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, at)
	return r.err
}

type sendOnly struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (s *sendOnly) Send(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

func drain(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("dispatcher did not drain: %v", err)
	}
}

func TestDispatcherDeliversAndSwallowsFailures(t *testing.T) {
	sink := &recordingSink{err: errors.New("boom")}
	d := NewDispatcher(sink, zap.NewNop(), time.Second)

	d.Notify(models.Notification{Event: models.EventBookingCreated, BookingID: "b1"})
	d.Notify(models.Notification{Event: models.EventBookingAccepted, BookingID: "b1"})
	drain(t, d)

	if len(sink.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sink.sent))
	}
	if sink.sent[0].CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be stamped")
	}

	// Closed dispatchers drop new work instead of starting goroutines.
	d.Notify(models.Notification{Event: models.EventBookingCancelled})
	if len(sink.sent) != 2 {
		t.Fatalf("expected no delivery after close")
	}
}

func TestDispatcherCloseWhileNotifying(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zap.NewNop(), time.Second)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			d.Notify(models.Notification{Event: models.EventBookingCreated, BookingID: "b1"})
		}()
	}
	close(start)
	drain(t, d)

	// Every notification accepted before Close has been delivered by now,
	// and the rest were dropped without starting a goroutine.
	sink.mu.Lock()
	delivered := len(sink.sent)
	sink.mu.Unlock()
	wg.Wait()
	time.Sleep(20 * time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.sent) != delivered {
		t.Fatalf("expected no delivery after Close returned, got %d then %d", delivered, len(sink.sent))
	}
}

func TestDispatcherSchedulesOnlyWhenSupported(t *testing.T) {
	sched := &recordingSink{}
	d := NewDispatcher(sched, zap.NewNop(), time.Second)
	d.ScheduleReminder(models.Notification{BookingID: "b1"}, time.Now().Add(time.Hour))
	d.ScheduleReminder(models.Notification{BookingID: "b2"}, time.Now().Add(-time.Hour))
	drain(t, d)
	if len(sched.scheduled) != 1 {
		t.Fatalf("expected one future reminder, got %d", len(sched.scheduled))
	}

	plain := &sendOnly{}
	d = NewDispatcher(Fanout{plain, NewLogSink(zap.NewNop())}, zap.NewNop(), time.Second)
	d.ScheduleReminder(models.Notification{BookingID: "b1"}, time.Now().Add(time.Hour))
	drain(t, d)
	if len(plain.sent) != 0 {
		t.Fatalf("send-only sinks must not receive reminders")
	}
}

func TestFanoutJoinsErrors(t *testing.T) {
	ok := &recordingSink{}
	bad := &recordingSink{err: errors.New("down")}
	err := Fanout{ok, bad}.Send(context.Background(), models.Notification{Event: models.EventBookingCreated})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if len(ok.sent) != 1 || len(bad.sent) != 1 {
		t.Fatalf("expected every sink to be attempted")
	}
}

func TestWebhookSink(t *testing.T) {
	var got models.Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Booking-Event") != models.EventBookingAccepted {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	n := models.Notification{Event: models.EventBookingAccepted, BookingID: "b9", RecipientID: "u1"}
	if err := sink.Send(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BookingID != "b9" {
		t.Fatalf("expected payload to reach the server, got %+v", got)
	}

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	sink.URL = failing.URL
	if err := sink.Send(context.Background(), n); err == nil {
		t.Fatalf("expected error on 500")
	}
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaSinkKeysByBooking(t *testing.T) {
	w := &fakeWriter{}
	sink := NewKafkaSink(w)
	if err := sink.Send(context.Background(), models.Notification{Event: models.EventBookingCreated, BookingID: "b7"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "b7" {
		t.Fatalf("expected one message keyed by booking, got %+v", w.msgs)
	}
	if string(w.msgs[0].Headers[0].Value) != models.EventBookingCreated {
		t.Fatalf("expected event_type header, got %+v", w.msgs[0].Headers)
	}
}

func TestBuildSink(t *testing.T) {
	cases := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "default log", opts: Options{}},
		{name: "log and webhook", opts: Options{Drivers: []string{"log", "webhook"}, WebhookURL: "http://localhost:9/hook"}},
		{name: "webhook without url", opts: Options{Drivers: []string{"webhook"}}, wantErr: true},
		{name: "queue without client", opts: Options{Drivers: []string{"queue"}}, wantErr: true},
		{name: "kafka without brokers", opts: Options{Drivers: []string{"kafka"}}, wantErr: true},
		{name: "unknown", opts: Options{Drivers: []string{"sms"}}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink, closer, err := BuildSink(tc.opts, zap.NewNop())
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || sink == nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := closer(); err != nil {
				t.Fatalf("close: %v", err)
			}
		})
	}
}
