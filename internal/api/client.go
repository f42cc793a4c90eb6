// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is where a locally run backend listens.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout is the default timeout for API requests. Chat
	// responses can take a while when the model is cold.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// requestsPerSecond paces outbound requests. High enough that the
	// 500ms progress poll and an interactive chat request never queue
	// behind each other in practice.
	requestsPerSecond = 10
	requestBurst      = 5
)

// Error variables for common backend errors.
var (
	// ErrNotAuthenticated indicates no bearer token is available for a
	// protected endpoint.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired indicates the backend rejected the bearer token.
	ErrSessionExpired = errors.New("session expired")

	// ErrMissingJobID indicates an ingestion submission came back without
	// a job identifier to poll.
	ErrMissingJobID = errors.New("submission response carried no process id")
)

// APIError is an error response reported by the backend itself, as opposed
// to a transport failure. Message holds the backend's "error" string when
// one was present in the body.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// errorBody is the shape the backend uses for every error payload.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ackResponse is the shape of mutation acknowledgments
// ({success, message?, error?}).
type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the LEGALIA backend. It holds no auth state of its own;
// the bearer token is pulled from the token source on every request so a
// login or forced logout takes effect immediately.
//
// There is no retry logic anywhere in this client. Every failure is
// surfaced to the caller on the first attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	// tokenSource returns the current bearer token, or "" when logged
	// out. Nil means the client only serves public endpoints.
	tokenSource func() string
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:  log.Default(),
	}
}

// WithTokenSource sets the function queried for the bearer token.
func (c *Client) WithTokenSource(src func() string) *Client {
	c.tokenSource = src
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithLogger sets the request logger.
func (c *Client) WithLogger(l *log.Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// token returns the current bearer token, or "".
func (c *Client) token() string {
	if c.tokenSource == nil {
		return ""
	}
	return c.tokenSource()
}

// =============================================================================
// SECURE REQUEST LOGGING
// =============================================================================

// logRequest logs method and path only. Never headers (auth) and never
// bodies (questions, credentials).
func (c *Client) logRequest(req *http.Request) {
	c.logger.Printf("api: %s %s", req.Method, req.URL.Path)
}

// logResponse logs the status code and duration, never the body.
func (c *Client) logResponse(req *http.Request, resp *http.Response, d time.Duration) {
	c.logger.Printf("api: %s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, d)
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do paces, sends, and logs one request. Exactly one attempt.
func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	c.logResponse(req, resp, time.Since(start))
	return resp, nil
}

// readBody reads the response body with the size limit applied.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// newAPIError extracts the backend's error string from an error body.
func newAPIError(status int, body []byte) *APIError {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return &APIError{Status: status, Message: eb.Error}
		}
		if eb.Message != "" {
			return &APIError{Status: status, Message: eb.Message}
		}
	}
	return &APIError{Status: status}
}

// getJSON performs a GET and decodes a JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// postJSON performs a POST (or the given method) with a JSON body and
// decodes a JSON response into out. out may be nil when only the status
// matters.
func (c *Client) postJSON(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// postAck performs a POST expecting a {success, error?} acknowledgment and
// folds a success=false body into an *APIError even on HTTP 200.
func (c *Client) postAck(ctx context.Context, path string, in any) error {
	var ack ackResponse
	if err := c.postJSON(ctx, http.MethodPost, path, in, &ack); err != nil {
		return err
	}
	if !ack.Success && ack.Error != "" {
		return &APIError{Status: http.StatusOK, Message: ack.Error}
	}
	return nil
}
