// Package provider defines the connector contract shared by all upstream
// sports data sources, plus the HTTP plumbing they share: retry/backoff,
// error classification, and defensive payload extraction.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

const defaultUserAgent = "scorecheck-api/1.0"

// Client performs GET requests with bounded exponential-backoff retry.
// Network failures and the retryable HTTP statuses are retried; remaining
// failures are classified into the connector error taxonomy.
type Client struct {
	httpClient *http.Client
	clock      clockwork.Clock
	retry      RetryPolicy
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a shared connector HTTP client.
func NewClient(timeout time.Duration, clock clockwork.Clock, logger *slog.Logger) *Client {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		clock:      clock,
		retry:      DefaultRetryPolicy(),
		userAgent:  defaultUserAgent,
		logger:     logger,
	}
}

// WithRetry returns a copy of the client using the given retry policy.
func (c *Client) WithRetry(retry RetryPolicy) *Client {
	clone := *c
	clone.retry = retry
	return &clone
}

// GetJSON fetches a URL and decodes the body into a generic payload. An
// empty body decodes to an empty payload. Exhausted retries surface the last
// observed error wrapped in a generic request error.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, headers map[string]string) (Payload, error) {
	u := rawURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	delay := c.retry.BaseDelay

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt >= c.retry.MaxRetries || ctx.Err() != nil {
				break
			}
			c.clock.Sleep(delay)
			delay = time.Duration(float64(delay) * c.retry.Multiplier)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if c.retry.retryable(resp.StatusCode) && attempt < c.retry.MaxRetries {
			wait := retryAfterDelay(resp.Header.Get("Retry-After"), delay)
			c.logger.Debug("retrying request",
				"url", rawURL, "status", resp.StatusCode, "wait", wait, "attempt", attempt+1)
			c.clock.Sleep(wait)
			delay = time.Duration(float64(delay) * c.retry.Multiplier)
			continue
		}

		if err := classifyStatus(resp.StatusCode, body); err != nil {
			return nil, err
		}
		if readErr != nil {
			return nil, &ResponseError{Reason: "read body: " + readErr.Error()}
		}

		if strings.TrimSpace(string(body)) == "" {
			return Payload{}, nil
		}
		var payload Payload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &ResponseError{Reason: "decode json: " + err.Error()}
		}
		return payload, nil
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}

func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return &AuthError{Status: status}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{}
	case status >= 400:
		return &HTTPError{Status: status, Body: truncate(body, 200)}
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
