package email

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

type Sender interface {
	Send(to string, subject string, body string) error
}

type Config struct {
	Host     string
	Port     string
	From     string
	ReplyTo  string
	Username string
	Password string
}

// SMTPSender sends plain-text email over SMTP. Credentials are optional:
// Mailpit and most local relays accept unauthenticated mail.
type SMTPSender struct {
	addr    string
	from    string
	replyTo string
	auth    smtp.Auth
}

func NewSMTPSender(cfg Config) *SMTPSender {
	host := strings.TrimSpace(cfg.Host)
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = "no-reply@openhouse.local"
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return &SMTPSender{
		addr:    fmt.Sprintf("%s:%s", host, strings.TrimSpace(cfg.Port)),
		from:    from,
		replyTo: strings.TrimSpace(cfg.ReplyTo),
		auth:    auth,
	}
}

func (s *SMTPSender) Send(to string, subject string, body string) error {
	msg := s.buildMessage(to, subject, body)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg))
}

// buildMessage assembles a minimal RFC 5322 message. Date and Message-ID
// keep stricter relays from rewriting or spam-flagging the mail.
func (s *SMTPSender) buildMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	if s.replyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", s.replyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", randomID(), messageDomain(s.from))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}

func randomID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

func messageDomain(from string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return from[i+1:]
	}
	return "openhouse.local"
}
