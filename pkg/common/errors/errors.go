package errors

import (
	"errors"
	"fmt"
	"time"
)

// Common error types used across the finflow library

var (
	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument indicates an invalid argument passed to an operation
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRateLimited indicates that a request was rate limited
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrUnknownSource indicates that no limiter is registered for a data source
	ErrUnknownSource = errors.New("unknown source")

	// ErrDuplicateSource indicates that a limiter is already registered for a data source
	ErrDuplicateSource = errors.New("source already registered")
)

// ValidationError describes a rejected configuration value or argument.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string

	// argument marks errors raised for call arguments rather than configuration.
	argument bool
}

// NewValidationError creates a ValidationError for a configuration field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewArgumentError creates a ValidationError for an invalid call argument.
func NewArgumentError(module, field string, value interface{}, reason string) *ValidationError {
	e := NewValidationError(module, field, value, reason)
	e.argument = true
	return e
}

// WithHint attaches a remediation hint to the error.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap returns ErrInvalidArgument for argument errors and
// ErrInvalidConfiguration otherwise.
func (e *ValidationError) Unwrap() error {
	if e.argument {
		return ErrInvalidArgument
	}
	return ErrInvalidConfiguration
}

// TimeoutError is returned when tokens could not be acquired within the
// configured wait timeout.
type TimeoutError struct {
	// Timeout is the configured maximum wait for a single acquire call.
	Timeout time.Duration

	// Requested is the number of tokens the caller asked for.
	Requested int

	// Waited is how long the call was suspended before giving up.
	Waited time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("rate limited: %d tokens not available within %v (waited %v)",
		e.Requested, e.Timeout, e.Waited.Round(time.Millisecond))
}

// Unwrap exposes both ErrRateLimited and ErrTimeout to errors.Is.
func (e *TimeoutError) Unwrap() []error {
	return []error{ErrRateLimited, ErrTimeout}
}

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited)
}

// IsTimeout reports whether err is a rate-limit wait timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsValidationError reports whether err was caused by invalid configuration or arguments.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) || errors.Is(err, ErrInvalidArgument)
}
