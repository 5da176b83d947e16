package templates

import (
	"errors"
	"fmt"
)

// Sentinel errors for template resolution and rendering.
var (
	// ErrTemplateNotFound indicates a triplet resolves in neither root.
	ErrTemplateNotFound = errors.New("brickend: template not found")
	// ErrTemplateSyntax indicates a template failed to parse or execute.
	ErrTemplateSyntax = errors.New("brickend: template syntax error")
)

// NotFoundError reports a (category, stack, component) triplet that is
// present in neither the override root nor the core root.
type NotFoundError struct {
	Category  string
	Stack     string
	Component string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("brickend: template not found: %s/%s/%s", e.Category, e.Stack, e.Component)
}

// Is reports whether the target matches the sentinel error for NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(category, stack, component string) *NotFoundError {
	return &NotFoundError{Category: category, Stack: stack, Component: component}
}

// SyntaxError reports a malformed template, carrying the failing
// template path. It is distinct from NotFoundError: a resolvable but
// broken template aborts the run.
type SyntaxError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("brickend: template syntax error in %s: %s", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrTemplateSyntax
}

// NewSyntaxError creates a new SyntaxError.
func NewSyntaxError(path string, cause error) *SyntaxError {
	return &SyntaxError{Path: path, Cause: cause}
}

// IsNotFound reports whether the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// IsSyntaxError reports whether the error is a SyntaxError.
func IsSyntaxError(err error) bool {
	var synErr *SyntaxError
	return errors.As(err, &synErr)
}
