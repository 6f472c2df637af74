package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Dataset ingestion errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDecode            = errors.New("dataset could not be decoded")

	// Request errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrTooLarge       = fmt.Errorf("%w: file too large", ErrInvalidInput)
	ErrNotFound       = errors.New("resource not found")
	ErrUnknownModel   = fmt.Errorf("%w: model", ErrNotFound)
	ErrTargetNotFound = fmt.Errorf("%w: target column", ErrNotFound)

	// Account errors
	ErrUnauthorized  = errors.New("invalid username or password")
	ErrConflict      = errors.New("already exists")
	ErrUsernameTaken = fmt.Errorf("%w: username", ErrConflict)

	// Remote model API errors
	ErrUpstream = errors.New("model API error")
)

// NewInvalidInputError reports a caller mistake on a named field.
func NewInvalidInputError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

// NewUpstreamError wraps a message returned by the model API.
func NewUpstreamError(message string) error {
	return fmt.Errorf("%w: %s", ErrUpstream, message)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDatasetError reports whether err is terminal for the current parse attempt.
// Both kinds are recoverable by picking a different file.
func IsDatasetError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrDecode)
}
