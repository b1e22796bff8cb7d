package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is a fetch failure caused by a non-success HTTP status code.
// It carries the status code so callers can distinguish "page gone" (404)
// from "slow down" (429) from "server trouble" (5xx).
type HTTPError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// URL is the requested URL.
	URL string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d (%s) for %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Retryable reports whether the status code indicates a transient condition
// worth retrying: rate limiting (429) or server-side failures (5xx).
// Client errors like 404 are permanent and retrying them only adds load.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsRetryable reports whether a fetch failure is worth retrying.
// Network-level errors (connection refused, timeouts) are retryable;
// HTTP errors defer to their status code; context cancellation is not
// retryable because the caller has already given up.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}

	// Anything else from the transport is a network-level failure.
	return true
}
