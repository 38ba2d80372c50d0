// Package email sends the account verification mail.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer sends verification mail for new accounts.
type Mailer interface {
	// SendVerification mails the verification link for the given token to
	// the address.
	SendVerification(ctx context.Context, to, token string) error
}

// SMTPMailer sends mail over a plain SMTP relay.
type SMTPMailer struct {
	addr    string // host:port
	from    string
	auth    smtp.Auth
	baseURL string // public base URL the verification link points at
}

// NewSMTPMailer creates a mailer for the given relay. username may be empty
// for unauthenticated relays.
func NewSMTPMailer(host string, port int, from, username, password, baseURL string) *SMTPMailer {
	m := &SMTPMailer{
		addr:    fmt.Sprintf("%s:%d", host, port),
		from:    from,
		baseURL: baseURL,
	}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

// SendVerification mails a single-use verification link.
func (m *SMTPMailer) SendVerification(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify?token=%s", m.baseURL, token)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your splitledger account\r\n"+
			"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
			"Welcome to splitledger!\r\n\r\n"+
			"Open the link below to verify your email address. The link is valid for 24 hours.\r\n\r\n"+
			"%s\r\n",
		m.from, to, link,
	)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}

// LogMailer logs the verification link instead of sending mail. Used in
// development and tests.
type LogMailer struct{}

// SendVerification logs the token that would have been mailed.
func (LogMailer) SendVerification(ctx context.Context, to, token string) error {
	slog.Info("verification mail (not sent)", "to", to, "token", token)
	return nil
}
