package email

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	s := NewSMTPSender(Config{Host: "mailpit", Port: "1025", From: "no-reply@openhouse.local"})
	msg := s.buildMessage("visitor@example.com", "Showing reminder", "See you at 2 PM.")

	for _, want := range []string{
		"From: no-reply@openhouse.local\r\n",
		"To: visitor@example.com\r\n",
		"Subject: Showing reminder\r\n",
		"Date: ",
		"Message-ID: <",
		"@openhouse.local>\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"\r\n\r\nSee you at 2 PM.\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Reply-To:") {
		t.Fatal("Reply-To should only appear when configured")
	}
}

func TestBuildMessageReplyTo(t *testing.T) {
	s := NewSMTPSender(Config{Host: "mailpit", Port: "1025", From: "no-reply@openhouse.local", ReplyTo: "agent@example.com"})
	msg := s.buildMessage("visitor@example.com", "Showing reminder", "body")
	if !strings.Contains(msg, "Reply-To: agent@example.com\r\n") {
		t.Fatalf("missing Reply-To header:\n%s", msg)
	}
}

func TestNewSMTPSenderDefaults(t *testing.T) {
	s := NewSMTPSender(Config{Host: " mailpit ", Port: " 1025 "})
	if s.addr != "mailpit:1025" {
		t.Fatalf("addr = %q", s.addr)
	}
	if s.from != "no-reply@openhouse.local" {
		t.Fatalf("from = %q", s.from)
	}
	if s.auth != nil {
		t.Fatal("auth should be nil without credentials")
	}
}
