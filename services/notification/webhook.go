package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookly/models"
)

// WebhookSink POSTs each notification as JSON to a single endpoint.
type WebhookSink struct {
	URL    string
	Client *http.Client
}

func NewWebhookSink(url string, timeout time.Duration) (*WebhookSink, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook sink initialization error: url is empty")
	}
	return &WebhookSink{URL: url, Client: &http.Client{Timeout: timeout}}, nil
}

func (s *WebhookSink) Send(ctx context.Context, n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Booking-Event", n.Event)

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook %s: %w", n.Event, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s: unexpected status %d", n.Event, resp.StatusCode)
	}
	return nil
}
