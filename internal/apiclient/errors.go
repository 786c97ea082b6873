package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")
	// ErrNetworkUnavailable is returned when no response was received.
	ErrNetworkUnavailable = errors.New("network unavailable")
)

// ServerRejectedError carries the status and message of a 4xx/5xx reply.
// Unauthorized and not-found replies wrap it next to their sentinel.
type ServerRejectedError struct {
	Status  int
	Message string
}

func (e *ServerRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request with status %d", e.Status)
	}
	return fmt.Sprintf("server rejected request with status %d: %s", e.Status, e.Message)
}

// MessageOr returns the backend-supplied message of err, or fallback.
func MessageOr(err error, fallback string) string {
	var rejected *ServerRejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	return fallback
}
