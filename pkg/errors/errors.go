// Package errors provides structured error types for voronoigen.
//
// This package defines error codes and types that enable:
//   - Consistent error handling between the generation core and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of the generator:
//   - CONFIGURATION: missing or invalid configuration, fatal before generation starts
//   - UNKNOWN_VARIANT: unrecognized sampler, distribution or post-processor name
//   - MISSING_PARAMETER: a variant's required dynamic parameter is absent at call time
//   - DIMENSION: crop or tile sizes that exceed or do not divide the canvas
//   - GEOMETRY: a point set the Voronoi partitioner cannot process
//   - INTERNAL: I/O and encoding failures
//
// # Usage
//
//	err := errors.Dimension("crop %dx%d exceeds canvas %dx%d", cw, ch, w, h)
//	if errors.Is(err, errors.ErrCodeDimension) {
//	    // abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "failed to write %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeConfiguration    Code = "CONFIGURATION"
	ErrCodeUnknownVariant   Code = "UNKNOWN_VARIANT"
	ErrCodeMissingParameter Code = "MISSING_PARAMETER"
	ErrCodeDimension        Code = "DIMENSION"
	ErrCodeGeometry         Code = "GEOMETRY"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
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

// Configuration reports a missing or invalid configuration field.
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// UnknownVariant reports an unregistered variant name of the given kind.
func UnknownVariant(kind, name string) *Error {
	return New(ErrCodeUnknownVariant, "unknown %s: %q", kind, name)
}

// MissingParameter reports a required parameter absent at call time.
func MissingParameter(variant, param string) *Error {
	return New(ErrCodeMissingParameter, "%s is required for %s", param, variant)
}

// Dimension reports a size that exceeds or does not divide the canvas.
func Dimension(format string, args ...any) *Error {
	return New(ErrCodeDimension, format, args...)
}

// Geometry reports a point set the partitioner cannot process.
func Geometry(format string, args ...any) *Error {
	return New(ErrCodeGeometry, format, args...)
}

// Is reports whether err has the given error code.
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, keeping any
// context that fmt.Errorf wrappers added in front of it.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + UserMessage(e.Cause)
	}
	if prefix, ok := strings.CutSuffix(err.Error(), e.Error()); ok {
		return prefix + msg
	}
	return msg
}
