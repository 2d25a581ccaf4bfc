package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these map to specific HTTP responses
var (
	// Registry errors
	ErrAppNotFound = errors.New("app not found")
	ErrAppExists   = errors.New("app already exists")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Resolver errors
	ErrInvalidAccessToken = errors.New("invalid access token")

	// Upstream errors
	ErrUpstream = errors.New("upstream twitter failure")

	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
)

// Stable machine-readable codes carried by FlowError.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeInvalidClient    = "invalid_client"
	CodeInvalidGrant     = "invalid_grant"
	CodeInvalidScope     = "invalid_scope"
	CodeUnsupportedGrant = "unsupported_grant_type"
)

// FlowError is a broker validation failure. It marshals to the
// single-field `{"error": message}` body Mastodon clients expect, while
// Code stays available for logging and tests.
type FlowError struct {
	Code    string `json:"-"`
	Message string `json:"error"`
}

func (e *FlowError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// NewFlowError creates a broker validation error.
func NewFlowError(code, message string) *FlowError {
	return &FlowError{Code: code, Message: message}
}

// AsFlowError unwraps err into a FlowError if it is one.
func AsFlowError(err error) (*FlowError, bool) {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
