// Package gen builds render contexts from entity definitions and drives
// code generation for a target backend stack.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrValidationFailed indicates an entity definition failed validation.
	ErrValidationFailed = errors.New("brickend: validation failed")
	// ErrInvalidConfig indicates a generation configuration error.
	ErrInvalidConfig = errors.New("brickend: invalid configuration")
	// ErrWriteFailed indicates an output file could not be written.
	ErrWriteFailed = errors.New("brickend: write failed")
)

// ValidationError reports an invalid entity definition: a bad identifier,
// a duplicate name, a missing primary key or a disallowed field type.
// It is always detected before any render context is built.
type ValidationError struct {
	Entity  string // entity name
	Field   string // field name (if applicable)
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("brickend: validation error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(entity, field string, value any, message string) *ValidationError {
	return &ValidationError{
		Entity:  entity,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ConfigError reports a generation configuration error, such as an empty
// entity list or a stack with no discoverable or fallback components.
// It always aborts the run before any write.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("brickend: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("brickend: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// WriteError reports a directory creation or file write failure. The
// failing path is always carried; earlier writes from the same run are
// left in place.
type WriteError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("brickend: write error for %s: %s", e.Path, e.Cause)
	}
	return fmt.Sprintf("brickend: write error for %s", e.Path)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for WriteError.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// NewWriteError creates a new WriteError.
func NewWriteError(path string, cause error) *WriteError {
	return &WriteError{Path: path, Cause: cause}
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsWriteError reports whether the error is a WriteError.
func IsWriteError(err error) bool {
	var wErr *WriteError
	return errors.As(err, &wErr)
}
