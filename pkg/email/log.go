package email

import (
	"context"
	"log"
)

// LogTransport pretends to send. It is the fallback when no provider is
// configured, so development setups still accept inquiries.
type LogTransport struct{}

func (LogTransport) Name() string { return "log" }

func (LogTransport) Send(ctx context.Context, msg Message) error {
	log.Printf("[email] would send %q to %s (reply-to %s)", msg.Subject, msg.To, msg.ReplyTo)
	return nil
}
