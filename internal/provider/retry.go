package provider

import (
	"strconv"
	"time"
)

// RetryPolicy bounds the exponential backoff shared by every connector.
// A Retry-After response header overrides the computed delay.
type RetryPolicy struct {
	MaxRetries    int
	BaseDelay     time.Duration
	Multiplier    float64
	RetryStatuses []int
}

// DefaultRetryPolicy mirrors the upstream defaults: 3 retries, 600ms base
// delay, doubling each attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BaseDelay:     600 * time.Millisecond,
		Multiplier:    2.0,
		RetryStatuses: []int{429, 500, 502, 503, 504},
	}
}

func (p RetryPolicy) retryable(status int) bool {
	for _, s := range p.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// retryAfterDelay parses a Retry-After header value (seconds, possibly
// fractional) and falls back to the computed delay.
func retryAfterDelay(header string, fallback time.Duration) time.Duration {
	if header == "" {
		return fallback
	}
	secs, err := strconv.ParseFloat(header, 64)
	if err != nil || secs < 0 {
		return fallback
	}
	return time.Duration(secs * float64(time.Second))
}
