package schema

import (
	"bytes"
	"encoding/json"
)

// SuccessCode is the envelope code the backend reports for a successful call.
const SuccessCode = 1000

type (
	// Response is the typed envelope returned by every backend endpoint.
	Response[T any] struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Result  T      `json:"result,omitempty"`
	}

	// Envelope is the untyped form of Response used by the client before the result is unwrapped.
	Envelope struct {
		Code    int             `json:"code,omitempty"`
		Message string          `json:"message,omitempty"`
		Result  json.RawMessage `json:"result,omitempty"`
	}

	// PageInfo describes one page of a paginated listing.
	PageInfo struct {
		Size          int   `json:"size"`
		Number        int   `json:"number"`
		TotalElements int64 `json:"totalElements"`
		TotalPages    int   `json:"totalPages"`
	}

	// Page is a paginated listing.
	Page[T any] struct {
		Content []T      `json:"content"`
		Page    PageInfo `json:"page"`
	}
)

// IsSuccessCode reports whether code denotes success; an absent code counts as success.
func IsSuccessCode(code int) bool {
	return code == 0 || code == SuccessCode
}

// HasResult reports whether the envelope carries a truthy result.
func (e *Envelope) HasResult() bool {
	raw := bytes.TrimSpace(e.Result)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", "0", `""`:
		return false
	}
	return true
}

// Err returns the application error carried by the envelope, or nil when the result can be used.
func (e *Envelope) Err(statusCode int) error {
	if e.HasResult() || IsSuccessCode(e.Code) {
		return nil
	}
	return &Error{StatusCode: statusCode, Code: e.Code, Message: e.Message}
}

// HasNext reports whether another page follows this one.
func (p *Page[T]) HasNext() bool {
	return p.Page.Number+1 < p.Page.TotalPages
}
