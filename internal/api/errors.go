package api

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a 404 from any backend endpoint. Callers that treat
// absence as a normal outcome (enrollment lookups) test for it with
// errors.Is.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Message)
}

// retryable reports whether the error is worth another attempt:
// server-side failures and transport errors, never client errors.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}
	// Transport-level errors are treated as transient.
	return true
}
