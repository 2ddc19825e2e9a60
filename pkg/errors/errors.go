// Package errors provides structured error types for gridviz.
//
// Error codes are machine-readable and grouped by category:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND: missing resources
//   - SOLVER_FAILED, NOT_CONVERGED: power-flow solver failures
//   - RENDER_FAILED: drawing failures (isolated from graph construction)
//   - INTERNAL_ERROR: unexpected internal errors
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidNetwork, "line %d references bus %d", i, b)
//	if errors.Is(err, errors.ErrCodeInvalidNetwork) {
//	    // handle validation error
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidCase    Code = "INVALID_CASE"
	ErrCodeInvalidNetwork Code = "INVALID_NETWORK"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeCaseNotFound Code = "CASE_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Solver errors
	ErrCodeSolverFailed Code = "SOLVER_FAILED"
	ErrCodeNotConverged Code = "NOT_CONVERGED"

	// Rendering errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Storage errors
	ErrCodeCache   Code = "CACHE_ERROR"
	ErrCodeArchive Code = "ARCHIVE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
