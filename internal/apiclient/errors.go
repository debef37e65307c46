package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const networkErrorMessage = "Network Error"

// Error is a failed backend call. Message is the text shown to the user.
type Error struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return "api: " + e.Message
	}
	return "api: " + http.StatusText(e.StatusCode) + ": " + e.Message
}

// Unwrap returns the transport or decode failure, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Unauthorized reports whether the backend rejected the credentials.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Message extracts the user-facing text from any error returned by this
// package.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		if text := http.StatusText(apiErr.StatusCode); text != "" {
			return text
		}
	}
	return networkErrorMessage
}

// IsUnauthorized reports whether err is a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

func failureFromBody(status int, raw []byte) *Error {
	var body failureBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return &Error{StatusCode: status, Message: msg}
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return &Error{StatusCode: status, Message: msg}
		}
	}
	return &Error{StatusCode: status, Message: http.StatusText(status)}
}
