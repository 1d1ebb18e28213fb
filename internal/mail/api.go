package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

type APIConfig struct {
	URL     string
	Key     string
	Timeout time.Duration
	From    From
}

// APISender posts messages to a Resend-compatible /emails endpoint.
type APISender struct {
	client *http.Client
	url    string
	from   From
}

func NewAPISender(cfg APIConfig) *APISender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APISender{
		client: &http.Client{
			Transport: &AuthTransport{
				APIKey: cfg.Key,
				Base:   http.DefaultTransport,
			},
			Timeout: timeout,
		},
		url:  strings.TrimRight(cfg.URL, "/") + "/emails",
		from: cfg.From,
	}
}

// AuthTransport adds the bearer token and content negotiation headers.
type AuthTransport struct {
	APIKey string
	Base   http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	return t.Base.RoundTrip(req)
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// APIError is the error body returned by the provider.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mail/api: %d %s: %s", e.StatusCode, e.Name, e.Message)
}

func (s *APISender) Send(ctx context.Context, msg Message) error {
	_, err := s.send(ctx, msg)
	return err
}

// send returns the provider message id.
func (s *APISender) send(ctx context.Context, msg Message) (string, error) {
	if err := msg.validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(sendRequest{
		From:    s.from.String(),
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail/api: request: %w", err)
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{}
		if err := json.Unmarshal(raw, apiErr); err == nil && apiErr.Message != "" {
			if apiErr.StatusCode == 0 {
				apiErr.StatusCode = resp.StatusCode
			}
			return "", apiErr
		}
		return "", fmt.Errorf("mail/api: unexpected status code: %d, body: %s", resp.StatusCode, string(raw))
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("mail/api: decode response: %w", err)
	}
	return out.ID, nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
