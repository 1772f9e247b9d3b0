// Package transport is the boundary to the external inspection, action registry
// and mapping runtime services.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client performs one request/response exchange with an external service.
// Implementations must not stream partial results.
type Client interface {
	Do(ctx context.Context, req Request) ([]byte, error)
}

// Request describes one call to an external service.
type Request struct {
	Method      string
	URL         string
	Body        []byte
	ContentType string
	Query       map[string]string
}

// Error is returned when a service call fails. Status 0 means the request never
// got an HTTP response.
type Error struct {
	Method     string
	URL        string
	Status     int
	StatusText string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.IsNetwork() {
		return fmt.Sprintf("fatal network error calling %s %s: %v", e.Method, e.URL, e.Err)
	}

	return fmt.Sprintf("%s %s failed: %d %s", e.Method, e.URL, e.Status, e.StatusText)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether the failure happened below HTTP (no status code).
func (e *Error) IsNetwork() bool {
	return e.Status == 0
}

// IsNetworkError reports whether err is a transport error without an HTTP status.
func IsNetworkError(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.IsNetwork()
	}

	return false
}

// HTTPClient is a Client backed by net/http.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient returns an HTTP client with the given per-request timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Do sends the request and returns the response body of a 2xx response.
func (c *HTTPClient) Do(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, &Error{Method: method, URL: req.URL, Err: err}
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}

		httpReq.URL.RawQuery = q.Encode()
	}

	contentType := req.ContentType
	if contentType == "" && len(req.Body) > 0 {
		contentType = "application/json"
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Method: method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: method, URL: req.URL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text := strings.TrimSpace(http.StatusText(resp.StatusCode))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			text = text + ": " + msg
		}

		return nil, &Error{Method: method, URL: req.URL, Status: resp.StatusCode, StatusText: text}
	}

	return body, nil
}

// JoinURL appends path to base, inserting exactly one "/" between them.
func JoinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
