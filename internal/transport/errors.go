package transport

import (
	"fmt"

	"auctionauth/internal/domain"
)

// Error is a request that did not complete.
type Error struct {
	Method    string
	Path      string
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport %s %s (request_id: %s): %v", e.Method, e.Path, e.RequestID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match for domain.ErrTransport.
func (e *Error) Is(target error) bool { return target == domain.ErrTransport }

// StatusError is a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	RequestID  string
	// Detail is the server's structured error, when it sent one.
	Detail *domain.ErrorDetail
	// Body is the raw response body, truncated, when Detail is nil.
	Body string
}

func (e *StatusError) Error() string {
	msg := e.Body
	if e.Detail != nil {
		msg = e.Detail.Message
	}
	if msg == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is maps 401 onto domain.ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return e.StatusCode == 401 && target == domain.ErrUnauthorized
}
