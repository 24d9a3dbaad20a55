package provider

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all connectors. The orchestrator never lets these
// escape to callers; they drive the next-provider/fallback decision.

// AuthError is a credential rejection (401/403). Fatal for that provider.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%d): check API key / plan / whitelist", e.Status)
}

// RateLimitError is a 429 that survived retries.
type RateLimitError struct{}

func (e *RateLimitError) Error() string { return "rate limited (429)" }

// HTTPError is a non-auth, non-rate-limit 4xx/5xx.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.Status, e.Body)
}

// ResponseError means the payload lacked expected structure or reported an
// API-level error.
type ResponseError struct {
	Reason string
}

func (e *ResponseError) Error() string { return "response error: " + e.Reason }

// IsRateLimit reports whether err is (or wraps) a RateLimitError.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
