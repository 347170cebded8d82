// Package notify delivers session codes through an outbound webhook. Delivery
// is fire-and-forget: the caller logs failures and moves on.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier dispatches a freshly issued session code to its user.
type Notifier interface {
	SendSessionCode(ctx context.Context, userID, email, code string) error
}

// Webhook posts the code as JSON to a configured URL.
type Webhook struct {
	url  string
	http *http.Client
}

var _ Notifier = (*Webhook)(nil)

// NewWebhook creates a webhook notifier for the given URL.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type sessionCodePayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

// SendSessionCode posts the session code payload to the webhook.
func (w *Webhook) SendSessionCode(ctx context.Context, userID, email, code string) error {
	raw, err := json.Marshal(sessionCodePayload{UserID: userID, Email: email, Code: code})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send notification: status %d", resp.StatusCode)
	}
	return nil
}
