package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const resendBaseURL = "https://api.resend.com"

type ResendTransport struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type resendEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	Html    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

// NewResendTransport talks to the Resend HTTP API. baseURL may be empty.
func NewResendTransport(apiKey, baseURL string) (*ResendTransport, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required: %w", ErrNotConfigured)
	}
	if baseURL == "" {
		baseURL = resendBaseURL
	}
	return &ResendTransport{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}, nil
}

func (t *ResendTransport) Name() string { return "resend" }

func (t *ResendTransport) Send(ctx context.Context, msg Message) error {
	jsonData, err := json.Marshal(resendEmail{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
