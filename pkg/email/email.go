// pkg/email/email.go
package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	texttemplate "text/template"
	"time"

	"propertymasters_backend/internal/model"
)

// ErrNotConfigured is returned when a transport is missing its credentials.
var ErrNotConfigured = errors.New("email transport not configured")

const defaultTimeout = 5 * time.Second

// Message is a single outgoing email. HTML is optional.
type Message struct {
	To      string
	From    string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers a Message. Implementations must honour ctx cancellation.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

type EmailService struct {
	transport Transport
	from      string
	to        string
	timeout   time.Duration
	html      *htmltemplate.Template
	text      *texttemplate.Template
	outbox    *Outbox
}

type Options struct {
	From    string
	To      string // operator inbox for inquiry notifications
	Timeout time.Duration
	Outbox  *Outbox
}

// Template data structures
type InquiryNotificationData struct {
	Name         string
	Email        string
	Phone        string
	Subject      string
	InquiryType  string
	MessageLines []string
	Message      string
}

func NewEmailService(transport Transport, opts Options) (*EmailService, error) {
	if transport == nil {
		return nil, fmt.Errorf("email transport is required")
	}

	html, text, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Outbox == nil {
		opts.Outbox = NewOutbox(0, 0)
	}

	return &EmailService{
		transport: transport,
		from:      opts.From,
		to:        opts.To,
		timeout:   opts.Timeout,
		html:      html,
		text:      text,
		outbox:    opts.Outbox,
	}, nil
}

func (s *EmailService) TransportName() string { return s.transport.Name() }

func (s *EmailService) Outbox() *Outbox { return s.outbox }

// Send delivers one message through the configured transport within the
// service timeout. It reports success and the transport error, if any.
func (s *EmailService) Send(ctx context.Context, to, replyTo, subject, text, html string) (bool, error) {
	err := s.deliver(ctx, Message{
		To:      to,
		From:    s.from,
		ReplyTo: replyTo,
		Subject: subject,
		Text:    text,
		HTML:    html,
	})
	return err == nil, err
}

func (s *EmailService) deliver(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", s.transport.Name(), err)
	}
	log.Printf("[email] sent %q to %s via %s", msg.Subject, msg.To, s.transport.Name())
	return nil
}

// SendInquiryNotification tells the operator inbox about a new inquiry.
// Replies go to the inquirer. On failure the message is parked in the
// outbox for the retry job and the error is returned for logging.
func (s *EmailService) SendInquiryNotification(ctx context.Context, inquiry model.ContactInquiry) error {
	msg, err := s.InquiryNotification(inquiry)
	if err != nil {
		return err
	}

	if err := s.deliver(ctx, msg); err != nil {
		s.outbox.Add(msg, err)
		return err
	}
	return nil
}

// InquiryNotification renders the notification without sending it.
func (s *EmailService) InquiryNotification(inquiry model.ContactInquiry) (Message, error) {
	data := InquiryNotificationData{
		Name:         inquiry.Name,
		Email:        inquiry.Email,
		Phone:        "Not provided",
		InquiryType:  inquiry.InquiryType,
		MessageLines: strings.Split(inquiry.Message, "\n"),
		Message:      inquiry.Message,
	}
	if inquiry.Phone != nil && *inquiry.Phone != "" {
		data.Phone = *inquiry.Phone
	}
	if inquiry.Subject != nil {
		data.Subject = *inquiry.Subject
	}

	var html, text bytes.Buffer
	if err := s.html.ExecuteTemplate(&html, "inquiry_notification.html", data); err != nil {
		return Message{}, fmt.Errorf("template execution error: %w", err)
	}
	if err := s.text.ExecuteTemplate(&text, "inquiry_notification.txt", data); err != nil {
		return Message{}, fmt.Errorf("template execution error: %w", err)
	}

	return Message{
		To:      s.to,
		From:    s.from,
		ReplyTo: inquiry.Email,
		Subject: "New Contact Inquiry from " + inquiry.Name,
		Text:    strings.TrimSpace(text.String()),
		HTML:    html.String(),
	}, nil
}

// RetryPending re-sends everything parked in the outbox.
func (s *EmailService) RetryPending(ctx context.Context) (sent, dropped int) {
	return s.outbox.Retry(ctx, s.deliver)
}
