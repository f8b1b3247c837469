package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Mailer sends transactional email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config holds the HTTP mail API settings. An empty APIKey disables sending.
type Config struct {
	APIURL  string
	APIKey  string
	From    string
	Timeout time.Duration
}

// New returns an HTTP-API-backed Mailer, or a logging no-op when the API key
// is not configured (local development).
func New(cfg Config) Mailer {
	if cfg.APIKey == "" || cfg.APIURL == "" {
		return &disabledMailer{}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &httpMailer{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// httpMailer talks to a ZeptoMail-style transactional mail HTTP API.
type httpMailer struct {
	cfg    Config
	client *http.Client
}

type sendRequest struct {
	From     sendAddress     `json:"from"`
	To       []sendRecipient `json:"to"`
	Subject  string          `json:"subject"`
	HTMLBody string          `json:"htmlbody"`
}

type sendAddress struct {
	Address string `json:"address"`
}

type sendRecipient struct {
	Email sendAddress `json:"email_address"`
}

func (m *httpMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload := sendRequest{
		From:     sendAddress{Address: m.cfg.From},
		To:       []sendRecipient{{Email: sendAddress{Address: to}}},
		Subject:  subject,
		HTMLBody: htmlBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mailer: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mailer: API returned %s", resp.Status)
	}
	return nil
}

// disabledMailer logs instead of sending, so flows that mail links (password
// reset) stay testable without credentials.
type disabledMailer struct{}

func (*disabledMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	slog.Info("mailer disabled, skipping send", "to", to, "subject", subject, "body", htmlBody)
	return nil
}
