package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebhookSenderSend(t *testing.T) {
	var got struct {
		To        string `json:"to"`
		Body      string `json:"body"`
		ShowingID string `json:"showing_id"`
	}
	var idemKey, authz string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idemKey = r.Header.Get("Idempotency-Key")
		authz = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message_id":"SM123"}`))
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, "secret")
	ref, err := s.Send(context.Background(), Message{
		To:        "+15550100",
		Body:      "Reminder: showing at 2 PM",
		ShowingID: "shw-1",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if ref != "SM123" {
		t.Fatalf("ref = %q", ref)
	}
	if got.To != "+15550100" || got.ShowingID != "shw-1" || got.Body == "" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if idemKey != "sms-shw-1" {
		t.Fatalf("Idempotency-Key = %q", idemKey)
	}
	if authz != "Bearer secret" {
		t.Fatalf("Authorization = %q", authz)
	}
}

func TestWebhookSenderNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, "")
	if _, err := s.Send(context.Background(), Message{To: "+15550100", Body: "x"}); err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected a 502 error, got %v", err)
	}
}

func TestWebhookSenderUnconfigured(t *testing.T) {
	s := NewWebhookSender("", "")
	if _, err := s.Send(context.Background(), Message{To: "+15550100", Body: "x"}); err == nil {
		t.Fatal("expected an error for a missing url")
	}
}
