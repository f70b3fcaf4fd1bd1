package transport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTransport marks failures where no response reached the client at all
// (DNS failure, refused connection, timeout). Callers distinguish "no
// connectivity" from "server rejected" with errors.Is:
//
//	if errors.Is(err, transport.ErrTransport) {
//	    // offline / backend unreachable
//	}
var ErrTransport = errors.New("transport failure")

// TransportError wraps the underlying network error for a request that
// never produced a response. It matches ErrTransport under errors.Is.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports a match for the ErrTransport sentinel.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// APIError is an HTTP error response from the backend (status >= 400).
// The server-provided payload is preserved verbatim in Body so UI layers
// can surface field-level validation errors untouched.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
}

func (e *APIError) Error() string {
	if detail := e.Detail(); detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Detail extracts the conventional {"detail": "..."} message from the error
// payload, or "" when the payload has some other shape.
func (e *APIError) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
