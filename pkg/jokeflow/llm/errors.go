package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable indicates the text source could not produce a
// completion. Calling nodes decide whether to propagate or substitute
// a fallback; the engine never catches this.
var ErrUnavailable = errors.New("text source unavailable")

// Error wraps a provider failure with the operation that failed and
// whether the condition looked transient. The engine performs no
// retries; Retryable is advisory for callers that run fresh attempts.
type Error struct {
	// Op is the operation that failed ("complete").
	Op string
	// Err is the underlying error.
	Err error
	// Retryable is true for rate limits, timeouts, and overload.
	Retryable bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error.
func NewError(op string, err error, retryable bool) *Error {
	return &Error{Op: op, Err: err, Retryable: retryable}
}

// isRetryableError checks if an error message indicates a transient
// condition.
func isRetryableError(errMsg string) bool {
	errLower := strings.ToLower(errMsg)
	return strings.Contains(errLower, "rate limit") ||
		strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "overloaded") ||
		strings.Contains(errLower, "503") ||
		strings.Contains(errLower, "529")
}
