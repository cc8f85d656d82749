package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Message is one outbound showing-reminder SMS. ShowingID rides along so
// the gateway can deduplicate on its side as well.
type Message struct {
	To        string
	Body      string
	ShowingID string
}

type Sender interface {
	// Send delivers the message and returns the provider's message
	// reference when the gateway supplies one.
	Send(ctx context.Context, m Message) (ref string, err error)
	ProviderID() string
}

// WebhookSender posts outbound SMS to a provider-agnostic webhook so any
// gateway (Twilio proxy, local simulator) can be plugged in via env.
type WebhookSender struct {
	url   string
	token string
	http  *http.Client
}

func NewWebhookSender(url string, token string) *WebhookSender {
	return &WebhookSender{
		url:   strings.TrimSpace(url),
		token: strings.TrimSpace(token),
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *WebhookSender) ProviderID() string {
	return "sms-webhook"
}

func (s *WebhookSender) Send(ctx context.Context, m Message) (string, error) {
	if s.url == "" {
		return "", errors.New("sms webhook url not configured")
	}
	raw, err := json.Marshal(map[string]string{
		"to":         m.To,
		"body":       m.Body,
		"showing_id": m.ShowingID,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.ShowingID != "" {
		req.Header.Set("Idempotency-Key", "sms-"+m.ShowingID)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("sms webhook returned %d", resp.StatusCode)
	}

	// The reference is optional; an empty body from a bare gateway is fine.
	var ack struct {
		MessageID string `json:"message_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", nil
	}
	return ack.MessageID, nil
}

type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) ProviderID() string {
	return "sms-noop"
}

func (s *NoopSender) Send(_ context.Context, _ Message) (string, error) {
	return "", nil
}
