// Package apiclient talks to the spreadsheet-backed remote API. Every call
// goes to one endpoint and selects its operation with the path query
// parameter.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/freelance-desk/internal/schemas"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept on HTTPError.
const maxErrorBody = 2048

// Config holds client configuration.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is a remote API client.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// envelope is the part of every response common to all operations.
type envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// New creates a client for the deployment at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("API base URL is empty")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{base: base, http: httpClient, logger: logger}, nil
}

// URL builds the request URL for an operation. Query parameters already on
// the base URL are kept.
func (c *Client) URL(operation string, params url.Values) string {
	u := *c.base
	q := u.Query()
	q.Set("path", strings.TrimPrefix(operation, "/"))
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// get performs a header-less GET so the remote host treats it as a simple
// request.
func (c *Client) get(ctx context.Context, operation string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(operation, params), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, operation, out)
}

// post sends payload as JSON text with a text/plain content type.
func (c *Client) post(ctx context.Context, operation string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", operation, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(operation, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	return c.do(req, operation, out)
}

func (c *Client) do(req *http.Request, operation string, out any) error {
	start := time.Now()
	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("operation", operation))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("operation", operation),
			zap.Error(err))
		return &ConnectionError{Operation: operation, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{Operation: operation, Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("api response",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("api returned error status",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode))
		return &HTTPError{Operation: operation, StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	if err := schemas.ValidateEnvelope(body); err != nil {
		return &ResponseError{Operation: operation, Message: "malformed response envelope", Cause: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &ResponseError{Operation: operation, Message: "failed to decode response", Cause: err}
	}
	if !env.OK {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = DefaultOperationMessage
		}
		c.logger.Warn("api operation failed",
			zap.String("operation", operation),
			zap.String("message", msg))
		return &OperationError{Operation: operation, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseError{Operation: operation, Message: "failed to decode payload", Cause: err}
	}
	return nil
}

// withID merges an id field into a payload object.
func withID(key, id string, payload any) (map[string]any, error) {
	merged := map[string]any{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &merged); err != nil {
			return nil, err
		}
	}
	merged[key] = id
	return merged, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
