package errors

import (
	"fmt"
	"time"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents a Slack API error with type information.
// RetryAfter is populated from the Retry-After header on throttling
// responses and is zero otherwise.
type Error struct {
	Type       ErrorType
	Message    string
	Code       int
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("slack %s error (code %d): %s", e.Type, e.Code, e.Message)
}

// IsRetryable checks if an error type should be retried.
// Only throttling is recovered locally; transport and server failures
// surface immediately so the run never silently under-counts.
func IsRetryable(errorType ErrorType) bool {
	return errorType == ErrorTypeRateLimit
}

// IsRateLimit reports whether err is a throttling error.
func IsRateLimit(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Type == ErrorTypeRateLimit
}

// RateLimitExceededError is returned when the retry budget for a single
// call is exhausted by consecutive throttling responses.
type RateLimitExceededError struct {
	Attempts int
	LastWait time.Duration
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit retry budget exhausted after %d attempts (last advised wait %s)",
		e.Attempts, e.LastWait)
}
