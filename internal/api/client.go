package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transport defaults
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 1 << 20
	RequestIDHeader     = "X-Request-ID"
	ContentTypeJSON     = "application/json; charset=UTF-8"
)

// Result is the outcome of one request: either a full response or Err
type Result struct {
	Status int
	Body   string
	Err    error // non-nil only when no response was received
}

// Failed reports whether the request produced no response
func (r Result) Failed() bool {
	return r.Err != nil
}

// Client talks to one posterity server
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	logger       *slog.Logger
	maxBodyBytes int64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxBodyBytes caps how much of a response body is read
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL:      u,
		http:         &http.Client{Timeout: DefaultTimeout},
		logger:       slog.Default(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the server root
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// ResolveURL returns the absolute URL of a server path
func (c *Client) ResolveURL(path string) string {
	return c.baseURL.String() + path
}

// Do sends one request. body is JSON-encoded unless it is nil.
func (c *Client) Do(ctx context.Context, method, path string, body any) Result {
	reqID := uuid.New().String()
	start := time.Now()

	var payload io.Reader = http.NoBody
	contentLength := 0
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("api.http.encode_error", "req_id", reqID, "path", path, "error", err)
			return Result{Err: fmt.Errorf("encode json: %w", err)}
		}
		payload = bytes.NewReader(bs)
		contentLength = len(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ResolveURL(path), payload)
	if err != nil {
		c.logger.Error("api.http.build_request_error", "req_id", reqID, "path", path, "error", err)
		return Result{Err: fmt.Errorf("build request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", ContentTypeJSON)
	}
	req.Header.Set(RequestIDHeader, reqID)

	c.logger.Debug("api.http.request",
		"req_id", reqID,
		"method", method,
		"path", path,
		"content_length", contentLength,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api.http.send_error", "req_id", reqID, "path", path, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return Result{Err: err}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("api.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		c.logger.Warn("api.http.read_error", "req_id", reqID, "path", path, "error", err)
		return Result{Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("api.http.response",
		"req_id", reqID,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return Result{Status: resp.StatusCode, Body: string(raw)}
}
