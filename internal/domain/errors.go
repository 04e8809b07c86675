package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("access denied")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ValidationError is a 4xx rejection. Message holds exactly what the
// response body carried, empty when it carried none; views that need a
// human-readable fallback supply their own.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return e.Message
}

// ServerError is a 5xx response from the backend. Surfaced as a generic failure.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// NetworkError means no usable response was received (connection refused,
// timeout, cancelled context). Retry policy is left to the caller.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is a NetworkError anywhere in its chain.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
