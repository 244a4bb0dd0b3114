// Package backend provides the HTTP clients for the pizzeria backend:
// catalog, customer directory and order submission. Every method is a single
// round trip with a fixed timeout; a 404 on lookups is a normal "absent"
// outcome, every other non-2xx response is an error for the caller.
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
)

// DefaultTimeout is the fixed timeout applied to every backend round trip.
const DefaultTimeout = 10 * time.Second

// Opts holds configuration options for the backend client.
type Opts struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Option defines a configuration option for the backend client.
type Option func(*Opts)

// WithBaseURL sets the backend base URL (e.g. "http://backend:3001/api/chatbot").
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// WithHTTPClient injects a custom HTTP client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opts) { o.Client = c }
}

// Client is the pizzeria backend API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client, applying any provided options.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL must be provided")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	slog.Debug("Backend client created", "base_url", cfg.BaseURL, "timeout", cfg.Timeout)
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}, nil
}

// get performs a GET and decodes the JSON body into out. When allowNotFound
// is set, a 404 returns (false, nil) and out is left untouched.
func (c *Client) get(ctx context.Context, path string, out interface{}, allowNotFound bool) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("Backend GET failed", "path", path, "error", err)
		return false, fmt.Errorf("backend request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && allowNotFound {
		slog.Debug("Backend GET not found", "path", path)
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("Backend GET unexpected status", "path", path, "status", resp.StatusCode)
		return false, fmt.Errorf("backend %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return true, nil
}

// post performs a POST with a JSON payload and decodes the JSON reply.
func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	return c.send(ctx, http.MethodPost, path, payload, out)
}

// put performs a PUT with a JSON payload and decodes the JSON reply.
func (c *Client) put(ctx context.Context, path string, payload, out interface{}) error {
	return c.send(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("Backend request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("backend request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("Backend request unexpected status", "method", method, "path", path, "status", resp.StatusCode)
		return fmt.Errorf("backend %s %s returned status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return nil
}
