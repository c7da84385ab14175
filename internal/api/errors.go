// Package api provides the HTTP client for the journal server API, with
// device-identity tagging, request rate limiting, and error classification.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, api.ErrNotFound) to check.
var (
	ErrBadRequest  = errors.New("api: bad request")
	ErrNotFound    = errors.New("api: not found")
	ErrServerError = errors.New("api: server error")
)

// APIError wraps a sentinel error with the HTTP status code and the
// server-provided message body. Any APIError (or plain transport error)
// counts as "remote unavailable" for queuing purposes; callers branch on
// ErrNotFound for read-repair decisions only.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch {
	case code == http.StatusBadRequest:
		return ErrBadRequest
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= http.StatusInternalServerError:
		return ErrServerError
	default:
		if code >= http.StatusOK && code < http.StatusMultipleChoices {
			return nil
		}

		return fmt.Errorf("api: unexpected status %d", code)
	}
}
