// Package delivery sends assembled reports to the PDF/email generation service.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

const (
	DefaultEndpoint    = "generate-pdf"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 2
	DefaultRetryDelay  = 500 * time.Millisecond

	maxResponseBytes = 1 << 20
)

// Client posts report payloads to the delivery service
type Client struct {
	baseURL     string
	apiKey      string
	endpoint    string
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
	httpClient  *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the deadline of each attempt
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMaxAttempts sets how many times a retryable failure is tried in total
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the pause between attempts
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithEndpoint sets the path, relative to the base URL, reports are posted to
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates a new delivery client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		endpoint:    DefaultEndpoint,
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		httpClient:  &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL returns the address reports are posted to
func (c *Client) URL() string {
	return strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(c.endpoint, "/")
}

// Send posts the payload, retrying network failures, timeouts, 5xx, 408 and
// 429 until the attempt budget is spent. Every attempt carries the same
// Idempotency-Key so the service can drop duplicates.
func (c *Client) Send(ctx context.Context, payload models.ReportPayload) (*models.DeliveryReceipt, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	key := uuid.NewString()
	url := c.URL()

	var lastErr *DeliveryError
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		receipt, derr := c.attempt(ctx, url, key, body)
		if derr == nil {
			slog.Info("report delivered", "url", url, "attempt", attempt, "idempotency_key", key)
			return receipt, nil
		}
		derr.Attempts = attempt
		lastErr = derr

		slog.Warn("report delivery attempt failed",
			"url", url,
			"attempt", attempt,
			"kind", derr.Kind,
			"status", derr.StatusCode,
			"error", derr.Error(),
		)

		if !derr.Retryable() || ctx.Err() != nil || attempt == c.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, &DeliveryError{Kind: kindFor(ctx.Err()), Message: "delivery cancelled", Attempts: attempt, Err: ctx.Err()}
		case <-time.After(c.retryDelay):
		}
	}

	return nil, lastErr
}

// attempt performs one POST
func (c *Client) attempt(ctx context.Context, url, key string, body []byte) (*models.DeliveryReceipt, *DeliveryError) {
	attemptCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &DeliveryError{Kind: KindNetwork, Message: "failed to create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", key)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindNetwork
		if isTimeout(err) {
			kind = KindTimeout
		}
		return nil, &DeliveryError{Kind: kind, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		kind := KindNetwork
		if isTimeout(err) {
			kind = KindTimeout
		}
		return nil, &DeliveryError{Kind: kind, StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, errorMessage(resp.StatusCode, respBody))
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return &models.DeliveryReceipt{Message: string(respBody)}, nil
	}

	var receipt models.DeliveryReceipt
	if err := json.Unmarshal(respBody, &receipt); err != nil {
		return nil, &DeliveryError{Kind: KindDecode, StatusCode: resp.StatusCode, Message: "invalid JSON response from server", Err: err}
	}
	return &receipt, nil
}

// errorMessage prefers the service's own message or error field
func errorMessage(code int, body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fmt.Sprintf("HTTP %d: %s", code, http.StatusText(code))
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func kindFor(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindNetwork
}
