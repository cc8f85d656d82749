package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nathan-pruitt/openhouse/libs/auth"
)

func TestPasswordHashing(t *testing.T) {
	password := "pass123"
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if err := verifyPassword(hash, password); err != nil {
		t.Fatalf("verifyPassword should succeed: %v", err)
	}
	if err := verifyPassword(hash, "wrong-pass"); err == nil {
		t.Fatal("verifyPassword should fail for wrong password")
	}
}

func TestHS256SignerRoundTrip(t *testing.T) {
	signer := NewHS256Signer("unit-secret")
	claims := auth.Claims{
		Sub:     "user-1",
		AgentID: "agent-1",
		Role:    "agent",
		Iat:     time.Now().Unix(),
		Exp:     time.Now().Add(time.Hour).Unix(),
	}
	token, err := signer.Sign(claims)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	got, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got.Sub != claims.Sub || got.AgentID != claims.AgentID || got.Role != claims.Role {
		t.Fatalf("claims mismatch: got %+v", got)
	}

	other := NewHS256Signer("other-secret")
	if _, err := other.Verify(token); err == nil {
		t.Fatal("token signed with a different secret should not verify")
	}
}

func TestRequestIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/auth/signin", nil)
	r.RemoteAddr = "10.0.0.7:54321"
	if got := requestIP(r); got != "10.0.0.7" {
		t.Fatalf("requestIP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := requestIP(r); got != "203.0.113.9" {
		t.Fatalf("requestIP with forwarded chain = %q", got)
	}
}

func TestNewRefreshToken(t *testing.T) {
	a, err := newRefreshToken()
	if err != nil {
		t.Fatalf("newRefreshToken failed: %v", err)
	}
	b, err := newRefreshToken()
	if err != nil {
		t.Fatalf("newRefreshToken failed: %v", err)
	}
	if a == b {
		t.Fatal("refresh tokens should be unique")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}
