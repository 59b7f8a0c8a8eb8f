// Package mailer emails the site owner when a contact message arrives.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/filipexyz/folio/internal/domain"
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Bytes renders m as an RFC 5322 message.
func (m Message) Bytes() []byte {
	var b strings.Builder
	b.WriteString("To: " + headerValue(m.To) + "\r\n")
	b.WriteString("From: " + headerValue(m.From) + "\r\n")
	if m.ReplyTo != "" {
		b.WriteString("Reply-To: " + headerValue(m.ReplyTo) + "\r\n")
	}
	b.WriteString("Subject: " + headerValue(m.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// headerValue strips line breaks so user input cannot inject headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds SMTP server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender sends mail through an SMTP server with PLAIN auth.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a Sender for the given server.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

// Send implements Sender. smtp.SendMail has no context support, so ctx is
// only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, msg.From, []string{msg.To}, msg.Bytes()); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}

// ContactNotification builds the owner notification for a contact message.
func ContactNotification(from, to string, m domain.ContactMessage) Message {
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Received: %s
Message:
%s

---
Sent from your portfolio contact form`, m.Name, m.Email, m.CreatedAt.Format("2006-01-02 15:04 MST"), m.Message)

	return Message{
		From:    from,
		To:      to,
		ReplyTo: m.Email,
		Subject: "Portfolio Contact: " + m.Name,
		Body:    body,
	}
}
