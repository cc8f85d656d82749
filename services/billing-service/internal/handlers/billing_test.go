package handlers

import (
	"strings"
	"testing"
)

func TestWithQueryParam(t *testing.T) {
	got := withQueryParam("https://app.example.com/billing/success", "state", "abc123")
	if got != "https://app.example.com/billing/success?state=abc123" {
		t.Fatalf("unexpected url: %s", got)
	}

	got = withQueryParam("https://app.example.com/return?foo=1", "state", "a b")
	if got != "https://app.example.com/return?foo=1&state=a+b" {
		t.Fatalf("unexpected url with existing query: %s", got)
	}
}

func TestNewReturnToken(t *testing.T) {
	a := newReturnToken()
	b := newReturnToken()
	if a == b {
		t.Fatalf("tokens should be unique")
	}
	if len(a) != 22 {
		t.Fatalf("unexpected token length: %d", len(a))
	}
	if strings.ContainsAny(a, "+/=") {
		t.Fatalf("token should be url-safe: %s", a)
	}
}
