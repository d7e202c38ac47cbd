package email

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertymasters_backend/pkg/config"
)

func testMessage() Message {
	return Message{
		To:      "info@propertymasters.ca",
		From:    "noreply@propertymasters.ca",
		ReplyTo: "jane@example.com",
		Subject: "New Contact Inquiry from Jane",
		Text:    "plain",
		HTML:    "<p>html</p>",
	}
}

func TestResendTransport(t *testing.T) {
	var got resendEmail
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	tr, err := NewResendTransport("re_test", srv.URL)
	require.NoError(t, err)
	require.NoError(t, tr.Send(context.Background(), testMessage()))

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "info@propertymasters.ca", got.To)
	assert.Equal(t, "jane@example.com", got.ReplyTo)
	assert.Equal(t, "plain", got.Text)
	assert.Equal(t, "<p>html</p>", got.Html)
}

func TestResendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	tr, err := NewResendTransport("re_test", srv.URL)
	require.NoError(t, err)

	err = tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
}

func TestResendTransportRequiresKey(t *testing.T) {
	_, err := NewResendTransport("", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSESTransport(t *testing.T) {
	client := &fakeSES{}
	tr := NewSESTransportWithClient(client)

	require.NoError(t, tr.Send(context.Background(), testMessage()))

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, "noreply@propertymasters.ca", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"info@propertymasters.ca"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"jane@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, "New Contact Inquiry from Jane", aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, "plain", aws.ToString(in.Content.Simple.Body.Text.Data))
	assert.Equal(t, "<p>html</p>", aws.ToString(in.Content.Simple.Body.Html.Data))
}

func TestSESTransportError(t *testing.T) {
	tr := NewSESTransportWithClient(&fakeSES{err: errors.New("throttled")})
	err := tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSMTPTransportRequiresCredentials(t *testing.T) {
	_, err := NewSMTPTransport("smtp.example.com", 587, "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	tr, err := NewSMTPTransport("smtp.example.com", 0, "user", "pass")
	require.NoError(t, err)
	assert.Equal(t, 587, tr.port)
}

func TestBuildMail(t *testing.T) {
	m, err := buildMail(testMessage())
	require.NoError(t, err)
	assert.NotNil(t, m)

	bad := testMessage()
	bad.To = "not an address"
	_, err = buildMail(bad)
	assert.Error(t, err)
}

func TestNewTransport(t *testing.T) {
	ctx := context.Background()

	cases := map[string]struct {
		cfg  config.EmailConfig
		want string
	}{
		"auto without credentials": {config.EmailConfig{Transport: "auto"}, "log"},
		"auto prefers resend": {config.EmailConfig{
			Transport:    "auto",
			ResendAPIKey: "re_x",
			SMTP:         config.SMTPConfig{Host: "h", Username: "u", Password: "p"},
		}, "resend"},
		"auto smtp": {config.EmailConfig{
			SMTP: config.SMTPConfig{Host: "h", Port: 25, Username: "u", Password: "p"},
		}, "smtp"},
		"forced smtp without credentials": {config.EmailConfig{Transport: "smtp"}, "log"},
		"forced resend without key":       {config.EmailConfig{Transport: "resend"}, "log"},
		"explicit log": {config.EmailConfig{Transport: "log", ResendAPIKey: "re_x"}, "log"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tr, err := NewTransport(ctx, tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tr.Name())
		})
	}

	_, err := NewTransport(ctx, config.EmailConfig{Transport: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	svc, err := NewFromConfig(context.Background(), config.EmailConfig{
		Transport:   "log",
		From:        "noreply@propertymasters.ca",
		To:          "info@propertymasters.ca",
		OutboxSize:  3,
		MaxAttempts: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "log", svc.TransportName())
	assert.Equal(t, 3, svc.Outbox().size)
	assert.Equal(t, 2, svc.Outbox().maxAttempts)
}
