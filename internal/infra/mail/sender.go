package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/config"
)

func NewEmailSender(cfg config.MailConfig) *EmailSender {
	return &EmailSender{
		From:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// NewEmailSenderWithDialer is used when the SMTP transport is provided by the caller.
func NewEmailSenderWithDialer(from string, d Dialer) *EmailSender {
	return &EmailSender{From: from, dialer: d}
}

// Notify sends a plain-text message over SMTP.
func (s *EmailSender) Notify(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send smtp mail: %w", err)
	}

	return nil
}
