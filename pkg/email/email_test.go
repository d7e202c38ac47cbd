package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertymasters_backend/internal/model"
)

type recordingTransport struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (r *recordingTransport) Name() string { return "recording" }

func (r *recordingTransport) Send(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingTransport) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func newService(t *testing.T, tr Transport) *EmailService {
	t.Helper()
	svc, err := NewEmailService(tr, Options{
		From: "Property Masters <noreply@propertymasters.ca>",
		To:   "info@propertymasters.ca",
	})
	require.NoError(t, err)
	return svc
}

func sampleInquiry() model.ContactInquiry {
	return model.ContactInquiry{
		ID:          "inq-1",
		Name:        "Jane <Doe>",
		Email:       "jane@example.com",
		Message:     "Line one & more\nLine \"two\"",
		InquiryType: model.InquiryTypeQuote,
		Status:      model.InquiryStatusPending,
	}
}

func TestInquiryNotification(t *testing.T) {
	svc := newService(t, &recordingTransport{})

	msg, err := svc.InquiryNotification(sampleInquiry())
	require.NoError(t, err)

	assert.Equal(t, "info@propertymasters.ca", msg.To)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.Equal(t, "New Contact Inquiry from Jane <Doe>", msg.Subject)

	assert.Contains(t, msg.HTML, "Jane &lt;Doe&gt;")
	assert.Contains(t, msg.HTML, "Line one &amp; more<br>Line &#34;two&#34;")
	assert.Contains(t, msg.HTML, "Not provided")
	assert.NotContains(t, msg.HTML, "<Doe>")

	assert.Contains(t, msg.Text, "Name: Jane <Doe>")
	assert.Contains(t, msg.Text, "Phone: Not provided")
	assert.Contains(t, msg.Text, "Inquiry Type: quote")
	assert.True(t, strings.HasSuffix(msg.Text, "Line one & more\nLine \"two\""))
}

func TestInquiryNotificationWithPhoneAndSubject(t *testing.T) {
	svc := newService(t, &recordingTransport{})

	inquiry := sampleInquiry()
	phone, subject := "780-555-0100", "Leasing"
	inquiry.Phone = &phone
	inquiry.Subject = &subject

	msg, err := svc.InquiryNotification(inquiry)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "780-555-0100")
	assert.NotContains(t, msg.HTML, "Not provided")
	assert.Contains(t, msg.Text, "Subject: Leasing")
}

func TestSendInquiryNotification(t *testing.T) {
	tr := &recordingTransport{}
	svc := newService(t, tr)

	require.NoError(t, svc.SendInquiryNotification(context.Background(), sampleInquiry()))

	require.Len(t, tr.sent, 1)
	assert.Equal(t, "Property Masters <noreply@propertymasters.ca>", tr.sent[0].From)
	assert.Equal(t, 0, svc.Outbox().Len())
}

func TestSendInquiryNotificationFailureIsQueued(t *testing.T) {
	tr := &recordingTransport{}
	tr.fail(errors.New("smtp down"))
	svc := newService(t, tr)

	err := svc.SendInquiryNotification(context.Background(), sampleInquiry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")

	pending := svc.Outbox().Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Contains(t, pending[0].LastError, "smtp down")

	tr.fail(nil)
	sent, dropped := svc.RetryPending(context.Background())
	assert.Equal(t, 1, sent)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 0, svc.Outbox().Len())
	require.Len(t, tr.sent, 1)
	assert.Equal(t, "jane@example.com", tr.sent[0].ReplyTo)
}

func TestSend(t *testing.T) {
	tr := &recordingTransport{}
	svc := newService(t, tr)

	ok, err := svc.Send(context.Background(), "ops@example.com", "", "Hello", "plain", "")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, tr.sent, 1)
	assert.Equal(t, "ops@example.com", tr.sent[0].To)

	tr.fail(errors.New("boom"))
	ok, err = svc.Send(context.Background(), "ops@example.com", "", "Hello", "plain", "")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, svc.Outbox().Len())
}

type slowTransport struct{}

func (slowTransport) Name() string { return "slow" }

func (slowTransport) Send(ctx context.Context, msg Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestSendTimesOut(t *testing.T) {
	svc, err := NewEmailService(slowTransport{}, Options{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	ok, err := svc.Send(context.Background(), "a@b.com", "", "s", "t", "")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLogTransport(t *testing.T) {
	svc := newService(t, LogTransport{})
	assert.Equal(t, "log", svc.TransportName())
	assert.NoError(t, svc.SendInquiryNotification(context.Background(), sampleInquiry()))
}
