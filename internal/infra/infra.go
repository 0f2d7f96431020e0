// Package infra provides shared infrastructure components used across
// the application: the HTTP client, JSON decoding and the remote error kinds.
package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout is applied when no HTTP timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client wraps an *http.Client with request logging and uniform error kinds.
type Client struct {
	http *http.Client
}

// NewClient creates a client with the given timeout. Requests are logged
// through logger at debug level; a nil logger disables request logging.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var transport http.RoundTripper = http.DefaultTransport
	if logger != nil {
		transport = &LoggingTransport{Base: transport, Logger: logger}
	}
	return &Client{http: &http.Client{Timeout: timeout, Transport: transport}}
}

// NewClientFrom wraps an existing *http.Client (used by tests with httptest servers).
func NewClientFrom(c *http.Client) *Client {
	if c == nil {
		c = http.DefaultClient
	}
	return &Client{http: c}
}

// DoGet performs a GET request and returns the response body and status code.
// Non-2xx responses are drained, closed and reported as *RemoteError.
// The caller must close the returned body.
func (c *Client) DoGet(ctx context.Context, service, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: build request: %w", service, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", service, RedactError(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, resp.StatusCode, &RemoteError{
			Service:    service,
			URL:        RedactURL(url),
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}
	return resp.Body, resp.StatusCode, nil
}

// GetJSON performs a GET request and decodes the JSON body into dest.
// Decoding failures are reported as *DecodeError.
func (c *Client) GetJSON(ctx context.Context, service, url string, headers map[string]string, dest any) error {
	body, _, err := c.DoGet(ctx, service, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", service, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &DecodeError{Service: service, Err: err}
	}
	return nil
}

// JSONHeaders returns the Accept header used for every JSON API.
func JSONHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}
