package email

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	timeout  time.Duration
}

// NewSMTPTransport sends through an authenticated SMTP relay, upgrading to
// STARTTLS when the server offers it.
func NewSMTPTransport(host string, port int, username, password string) (*SMTPTransport, error) {
	if host == "" || username == "" || password == "" {
		return nil, fmt.Errorf("smtp host, user and password are required: %w", ErrNotConfigured)
	}
	if port == 0 {
		port = 587
	}
	return &SMTPTransport{
		host:     host,
		port:     port,
		username: username,
		password: password,
		timeout:  defaultTimeout,
	}, nil
}

func (t *SMTPTransport) Name() string { return "smtp" }

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	m, err := buildMail(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(t.host,
		mail.WithPort(t.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.username),
		mail.WithPassword(t.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(t.timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMail(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}
