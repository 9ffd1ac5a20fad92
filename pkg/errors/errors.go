// Package errors provides coded errors for the layout engine.
//
// Codes separate caller mistakes made while building a document
// (INVALID_ARGUMENT), ordering violations such as preparing an element
// twice (ILLEGAL_STATE), and failures of external collaborators.
//
//	err := errors.New(errors.ErrCodeIllegalState, "element %s is already prepared", id)
//	if errors.Is(err, errors.ErrCodeIllegalState) {
//	    // programmer error in the calling code
//	}
//
// Split failure is never reported through this package: a split that makes
// no sense is a nil result, not an error.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// ErrCodeInvalidArgument marks construction errors: negative geometry,
	// index out of range, incompatible width specs in a spanned cell.
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	// ErrCodeIllegalState marks ordering violations and unusable page geometry.
	ErrCodeIllegalState Code = "ILLEGAL_STATE"
	// ErrCodeRenderFailed marks failures of the drawing surface or page host.
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	// ErrCodeInvalidConfig marks malformed document descriptions.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	// ErrCodeNotFound marks missing fonts or images.
	ErrCodeNotFound Code = "NOT_FOUND"
	// ErrCodeScriptFailed marks errors raised by a customizer script.
	ErrCodeScriptFailed Code = "SCRIPT_FAILED"
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
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Invalid panics with an ErrCodeInvalidArgument error. It is used by value
// constructors where a bad argument can only be a bug at the call site.
func Invalid(format string, args ...any) {
	panic(New(ErrCodeInvalidArgument, format, args...))
}
