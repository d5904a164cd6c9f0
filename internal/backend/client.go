// Package backend implements the HTTP protocol spoken with the job-description
// analysis service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the default HTTP request timeout. Analysis of an image can
// take a while on the backend.
const DefaultTimeout = 90 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "jd-assistant/1.0"

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Endpoint paths relative to the base address.
const (
	PathResumeStatus = "/resume/status"
	PathResumeUpload = "/resume/upload"
	PathAnalyze      = "/analyze-jd"
	PathHealth       = "/health"
)

// BaseURLSource supplies the backend base address. It is consulted on every call.
type BaseURLSource interface {
	Get(ctx context.Context) (string, error)
}

// StaticURL is a BaseURLSource that always returns the same address.
type StaticURL string

func (s StaticURL) Get(context.Context) (string, error) {
	return string(s), nil
}

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the analysis backend.
type Client struct {
	base    BaseURLSource
	http    *http.Client
	options *Options
	logger  *slog.Logger
}

// New creates a Client reading its base address from base.
func New(base BaseURLSource, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:    base,
		http:    httpClient,
		options: opts,
		logger:  logger.With("component", "backend"),
	}
}

type response struct {
	StatusCode int
	Body       []byte
}

func (r *response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// do issues one request. Only transport-level failures are returned as errors;
// status handling is left to the caller.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) (*response, error) {
	baseURL, err := c.base.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	urlStr := joinURL(baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: urlStr, Cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.options.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range c.options.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "url", urlStr, "request_id", requestID, "error", err)
		return nil, &TransportError{Op: op, URL: urlStr, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: urlStr, Cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug("request complete",
		"op", op,
		"url", urlStr,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	return &response{StatusCode: resp.StatusCode, Body: bodyBytes}, nil
}

// apiError builds the error for a non-2xx response. A body that is not a JSON
// object with a string detail leaves Detail empty.
func apiError(op string, resp *response) *APIError {
	var payload struct {
		Detail any `json:"detail"`
	}
	apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
	if err := json.Unmarshal(resp.Body, &payload); err == nil {
		if detail, ok := payload.Detail.(string); ok {
			apiErr.Detail = detail
		}
	}
	return apiErr
}

func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

func decodeJSON(op string, body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		return &ProtocolError{Op: op, Message: "malformed response body", Cause: err}
	}
	return nil
}
