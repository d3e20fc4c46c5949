package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors callers can match with errors.Is. Every failure
// returned by the client unwraps to exactly one of these.
var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("permission denied")
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrRateLimited    = errors.New("rate limited")
	ErrServer         = errors.New("server error")
)

// Error is a failed API response. Status holds the HTTP status code,
// Message a human-readable explanation, and Fields the per-field
// validation messages of a 422 response.
type Error struct {
	Fields  map[string][]string
	Message string
	kind    error
	Status  int
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

// Unwrap exposes the sentinel category for errors.Is.
func (e *Error) Unwrap() error {
	return e.kind
}

// fallbackMessage supplies the fixed user-facing text for responses
// that carry no message of their own.
func fallbackMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "authentication required"
	case status == http.StatusForbidden:
		return "you do not have permission to perform this action"
	case status == http.StatusNotFound:
		return "the requested resource was not found"
	case status == http.StatusUnprocessableEntity:
		return "the submitted data is invalid"
	case status == http.StatusTooManyRequests:
		return "too many requests, please slow down"
	case status >= 500:
		return "the server encountered an error, please try again later"
	default:
		return fmt.Sprintf("request failed with status %d", status)
	}
}

// newStatusError maps an HTTP status to the error taxonomy. The
// envelope, when present, contributes the server's message and any
// field-level validation errors.
func newStatusError(status int, env *envelope) error {
	e := &Error{Status: status, Message: fallbackMessage(status)}
	if env != nil {
		if env.Message != "" {
			e.Message = env.Message
		}
		e.Fields = env.Errors
	}

	switch {
	case status == http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case status == http.StatusForbidden:
		e.kind = ErrForbidden
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
	case status == http.StatusUnprocessableEntity:
		e.kind = ErrValidation
	case status == http.StatusTooManyRequests:
		e.kind = ErrRateLimited
	case status >= 500:
		e.kind = ErrServer
	default:
		e.kind = fmt.Errorf("unexpected status %d", status)
	}
	return e
}

// FieldErrors extracts the per-field validation messages from err, if
// it carries any. The form layer uses them to annotate inputs.
func FieldErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
