package schema

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an application-level failure: either a non-2xx response or a
// 2xx envelope whose code reports a business error.
type Error struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d code=%d", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("api error: status=%d code=%d: %s", e.StatusCode, e.Code, e.Message)
}

// IsUnauthorized reports whether err is an application error carrying HTTP 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *Error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// NewError creates an application error
func NewError(statusCode, code int, message string) *Error {
	return &Error{StatusCode: statusCode, Code: code, Message: message}
}
