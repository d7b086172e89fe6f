// Package errors provides standardized domain errors with codes for the tagging pipeline.
//
// Usage:
//
//	// In components - return typed errors
//	if starts[i] <= starts[i-1] {
//	    return errors.Validationf("chapter %d starts before chapter %d", i+1, i)
//	}
//
//	// In the pipeline - check with errors.Is
//	if errors.Is(err, errors.ErrFormat) {
//	    log.Warn("skipping unparsable file", "path", path)
//	    continue
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeFormat:
//	        report.Skip(path, domainErr)
//	    case errors.CodeIO:
//	        report.Skip(path, domainErr)
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	// CodeInput marks malformed input to a pure function. Local, fatal
	// only to that call.
	CodeInput Code = "INPUT"
	// CodeFormat marks a file that does not match the expected tag
	// format. Caught per file, logged, file skipped.
	CodeFormat Code = "FORMAT"
	// CodeValidation marks out-of-order or negative chapter segments.
	// Fatal to that media item's chapter processing only.
	CodeValidation Code = "VALIDATION"
	// CodeIO marks a filesystem failure (locked file, permission, disk
	// full). Caught per file, no internal retry, logged, file skipped.
	CodeIO Code = "IO"

	CodeNotFound Code = "NOT_FOUND"
	CodeInternal Code = "INTERNAL"
)

// Error is a domain error with a code, message, and optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrInput      = &Error{Code: CodeInput, Message: "malformed input"}
	ErrFormat     = &Error{Code: CodeFormat, Message: "unexpected tag format"}
	ErrValidation = &Error{Code: CodeValidation, Message: "validation error"}
	ErrIO         = &Error{Code: CodeIO, Message: "io error"}
	ErrNotFound   = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInternal   = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// Input creates an input error.
func Input(msg string) *Error {
	return &Error{Code: CodeInput, Message: msg}
}

// Inputf creates an input error with formatted message.
func Inputf(format string, args ...any) *Error {
	return &Error{Code: CodeInput, Message: fmt.Sprintf(format, args...)}
}

// Format creates a format error.
func Format(msg string) *Error {
	return &Error{Code: CodeFormat, Message: msg}
}

// Formatf creates a format error with formatted message.
func Formatf(format string, args ...any) *Error {
	return &Error{Code: CodeFormat, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// IO creates an io error.
func IO(msg string) *Error {
	return &Error{Code: CodeIO, Message: msg}
}

// IOf creates an io error with formatted message.
func IOf(format string, args ...any) *Error {
	return &Error{Code: CodeIO, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
