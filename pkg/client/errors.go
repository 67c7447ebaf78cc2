package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted
	// while the server keeps rate limiting. The final *RateLimitError is
	// wrapped and reachable via errors.As.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrTokenRequired is returned by New when no API token is configured.
	ErrTokenRequired = errors.New("api token is required")

	// ErrQuotaExceeded is returned when the local quota tracker blocks a
	// request before it is sent, to avoid burning the server-side limit.
	ErrQuotaExceeded = errors.New("request blocked: rate limit quota exhausted")
)

// RateLimitError reports a 429 response from the server. It is the only
// error class the retry wrapper recovers from.
type RateLimitError struct {
	Detail string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by server: %s", e.Detail)
}

// RequestError reports any non-2xx, non-429 response. It is never retried.
type RequestError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Detail)
}

// errorDetail extracts a human-readable message from an error response body.
// The API usually returns {"error": "..."}; anything else is passed through
// as raw text.
func errorDetail(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(body)
}
