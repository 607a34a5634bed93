package client

import (
	"errors"
	"fmt"
)

// TransportError means the service could not be reached or the exchange
// was cut short: DNS, connection, timeout, cancellation.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a reply the client could not turn into a result: a
// non-success status, an undecodable body or a contract violation. Detail
// holds the service's error detail when it sent a usable one.
type ServiceError struct {
	StatusCode int
	Status     string
	URL        string
	Detail     string
	Body       string
	Cause      error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("client: service error: %s", e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (%v)", e.Cause)
	}
	return msg
}

func (e *ServiceError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error.
func (e *ServiceError) WithCause(cause error) *ServiceError {
	e.Cause = cause
	return e
}

// HasDetail reports whether the service supplied an error detail.
func (e *ServiceError) HasDetail() bool { return e.Detail != "" }

// Detail returns the service-supplied detail carried by err, if any.
func Detail(err error) (string, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.HasDetail() {
		return svcErr.Detail, true
	}
	return "", false
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
