// pkg/email/service.go
package email

import (
	"context"
	"errors"
	"fmt"
	"log"

	"propertymasters_backend/pkg/config"
)

// NewTransport picks the transport named by cfg.Transport. "auto" takes the
// first provider with credentials: Resend, then SMTP, then SES. A provider
// that is named but not configured falls back to the log transport.
func NewTransport(ctx context.Context, cfg config.EmailConfig) (Transport, error) {
	name := cfg.Transport
	if name == "" || name == "auto" {
		name = detectTransport(cfg)
	}

	var (
		t   Transport
		err error
	)
	switch name {
	case "resend":
		t, err = NewResendTransport(cfg.ResendAPIKey, "")
	case "smtp":
		t, err = NewSMTPTransport(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	case "ses":
		t, err = NewSESTransport(ctx, cfg.SES.Region, cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey)
	case "log":
		return LogTransport{}, nil
	default:
		return nil, fmt.Errorf("unknown email transport %q", cfg.Transport)
	}

	if errors.Is(err, ErrNotConfigured) {
		log.Printf("[WARN] email transport %s is not configured (%v), falling back to log", name, err)
		return LogTransport{}, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func detectTransport(cfg config.EmailConfig) string {
	switch {
	case cfg.ResendAPIKey != "":
		return "resend"
	case cfg.SMTP.Host != "" && cfg.SMTP.Username != "" && cfg.SMTP.Password != "":
		return "smtp"
	case cfg.SES.Enabled:
		return "ses"
	default:
		return "log"
	}
}

// NewFromConfig builds the notification service the server and CLI share.
func NewFromConfig(ctx context.Context, cfg config.EmailConfig) (*EmailService, error) {
	transport, err := NewTransport(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := NewEmailService(transport, Options{
		From:    cfg.From,
		To:      cfg.To,
		Timeout: cfg.Timeout,
		Outbox:  NewOutbox(cfg.OutboxSize, cfg.MaxAttempts),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[email] notifications to %s via %s transport", cfg.To, transport.Name())
	return svc, nil
}
