// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxResponseBytes caps how much of a response body is read.
const DefaultMaxResponseBytes = 8 << 20

// HTTPClient sends JSON requests relative to BaseURL.
type HTTPClient struct {
	BaseURL          string
	HTTPClient       *http.Client
	MaxResponseBytes int64
}

// StatusError is returned when the server answers outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// DecodeError is returned when a 2xx body cannot be decoded into the response.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewHTTPClient returns a client whose requests time out after timeout
// (10s when zero).
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		BaseURL:          baseURL,
		HTTPClient:       &http.Client{Timeout: timeout},
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// GetJSON is Request with GET and no body.
func (c *HTTPClient) GetJSON(ctx context.Context, endpoint string, headers map[string]string, response interface{}) error {
	return c.Request(ctx, http.MethodGet, endpoint, headers, nil, response)
}

// Request sends body as JSON, when non-nil, and decodes a 2xx answer into
// response, when non-nil.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}, response interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	limit := c.MaxResponseBytes
	if limit <= 0 {
		limit = DefaultMaxResponseBytes
	}
	limited := io.LimitReader(res.Body, limit)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		io.Copy(io.Discard, limited)
		return &StatusError{Code: res.StatusCode, Status: res.Status}
	}

	if response == nil {
		_, err := io.Copy(io.Discard, limited)
		return err
	}
	if err := json.NewDecoder(limited).Decode(response); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
