// Package mail sends transactional email through the Resend HTTP API.
package mail

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// Mailer is the delivery interface services depend on. Delivery failures
// are reported to callers as email_sent=false, never as operation
// failures, so implementations must not panic on provider errors.
type Mailer interface {
	Send(to, subject, html string) error
}

// ResendClient posts messages to the Resend /emails endpoint.
type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

func NewResendClient(apiKey, from string) *ResendClient {
	return &ResendClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendError struct {
	Message string `json:"message"`
}

func (r *ResendClient) Send(to, subject, html string) error {
	if r.apiKey == "" {
		return errors.New("resend api key not configured")
	}

	body, err := json.Marshal(sendRequest{
		From:    r.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.baseURL+"/emails", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr sendError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("resend returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend returned %d", resp.StatusCode)
	}

	return nil
}
