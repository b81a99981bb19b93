// Package notify delivers user-facing notifications about exchange events.
// The only transport is an outbound webhook; delivery is best-effort and
// callers are expected to treat failures as non-fatal.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Notifier delivers a notification to a single user.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, text string) error
}

// Webhook posts notifications as JSON to a configured HTTP endpoint.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook notifier.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type payload struct {
	UserID uuid.UUID `json:"user_id"`
	Text   string    `json:"text"`
}

// Notify posts a single notification. Any non-2xx response is an error.
func (w *Webhook) Notify(ctx context.Context, userID uuid.UUID, text string) error {
	body, err := json.Marshal(payload{UserID: userID, Text: text})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post notification: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Nop discards all notifications. Used when no webhook URL is configured.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, uuid.UUID, string) error { return nil }
