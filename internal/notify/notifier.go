package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Event é o payload enviado ao colaborador externo de notificação.
type Event struct {
	Action        string    `json:"action"`
	AppointmentID uint      `json:"appointment_id,omitempty"`
	BlockID       uint      `json:"block_id,omitempty"`
	BarberID      uint      `json:"barber_id"`
	ClientID      uint      `json:"client_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	StartTime     time.Time `json:"start_time,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// ===============================
// Webhook
// ===============================

type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal notify event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notify event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify webhook returned %d", resp.StatusCode)
	}
	return nil
}
