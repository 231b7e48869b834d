package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the transport failed before any HTTP response
	// arrived (connection refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrValidation means the request was rejected locally, before any
	// network call, because required fields were missing or malformed.
	ErrValidation = errors.New("validation error")
)

// HTTPError is returned when the server responded with a non-success status.
// Detail carries the server's conventional `{"detail": "..."}` explanation
// when present; otherwise it is empty and callers should fall back to a
// generic message.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// ErrorMessage extracts a human-readable message from an API call failure:
// the server detail when the failure is an *HTTPError with one, the fallback
// otherwise. Used by stores when publishing errors for display.
func ErrorMessage(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Detail != "" {
		return httpErr.Detail
	}
	return fallback
}
