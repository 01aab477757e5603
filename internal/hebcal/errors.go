package hebcal

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request so callers can branch on it,
// for example retrying only transport failures.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindService   ErrorKind = "service"
	KindDecode    ErrorKind = "decode"
	KindUnknown   ErrorKind = "unknown"
)

// ServiceError is the error payload returned by hebcal.com on 4xx/5xx responses.
type ServiceError struct {
	// StatusCode is the HTTP status the service answered with
	StatusCode int `json:"-"`

	// Message is the service's message, verbatim
	Message string `json:"error"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("hebcal service error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError is a failure before any HTTP status was available:
// URL construction, connection, TLS, timeout or reading the body.
type TransportError struct {
	// Op is the step that failed (e.g., "build url", "do", "read body")
	Op string

	// URL is the request URL, empty if it could not be built
	URL string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("hebcal transport %s (%s): %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("hebcal transport %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means a response body (success or error shape) did not match
// the expected structure. It indicates a contract mismatch with the service.
type DecodeError struct {
	// StatusCode is the HTTP status of the response whose body failed to decode
	StatusCode int

	// Body is a truncated preview of the offending body
	Body string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("hebcal decode error (status %d): %v", e.StatusCode, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnknownError is the fallback for outcomes outside the taxonomy, such as
// an informational or unfollowed redirect status.
type UnknownError struct {
	StatusCode int
}

// Error implements the error interface
func (e *UnknownError) Error() string {
	return fmt.Sprintf("hebcal unknown error (status %d)", e.StatusCode)
}

// IncompleteLocationError reports coordinates mode selected without both
// latitude and longitude.
type IncompleteLocationError struct {
	Missing []string
}

// Error implements the error interface
func (e *IncompleteLocationError) Error() string {
	return fmt.Sprintf("coordinates location is missing %v", e.Missing)
}

// Kind returns the classification of err. A nil error has no kind.
func Kind(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var transportErr *TransportError
	var serviceErr *ServiceError
	var decodeErr *DecodeError

	switch {
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &serviceErr):
		return KindService
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindUnknown
	}
}
