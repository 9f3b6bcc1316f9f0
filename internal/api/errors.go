package api

import (
	"errors"
	"fmt"
)

// Failure categories. Callers match them with errors.Is.
var (
	// ErrTransport means no response reached the client (DNS, connection, timeout)
	ErrTransport = errors.New("transport failure")
	// ErrProtocol means a response arrived but its body had an unexpected shape
	ErrProtocol = errors.New("protocol error")
	// ErrRejected means the server refused the request with a human-readable body
	ErrRejected = errors.New("request rejected")
	// ErrServerFault means a 5xx or an unclassified response
	ErrServerFault = errors.New("server fault")
)

// Error is a classified failure of one request
type Error struct {
	Kind    error
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewError creates a classified error
func NewError(kind error, status int, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Status:  status,
		Message: message,
		Cause:   cause,
	}
}

// TransportError wraps a failure that produced no response
func TransportError(cause error) *Error {
	return NewError(ErrTransport, 0, "", cause)
}

// ProtocolError reports a response whose body could not be used
func ProtocolError(status int, cause error) *Error {
	return NewError(ErrProtocol, status, "", cause)
}

// RejectedError reports a 4xx response with a user-facing body
func RejectedError(status int, body string) *Error {
	return NewError(ErrRejected, status, body, nil)
}

// ServerFault reports a 5xx or unclassified response
func ServerFault(status int) *Error {
	return NewError(ErrServerFault, status, "", nil)
}
