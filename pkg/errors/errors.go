// Package errors provides structured error types for weekgrid.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, server and library callers
//   - Machine-readable error codes for programmatic handling
//   - Precise user-facing messages that cite the offending document field
//
// # Error Codes
//
// Compile errors use exactly three codes:
//   - MALFORMED_TIME: a time string does not match "<h>:<mm> <AM|PM>"
//   - INVALID_RANGE: an end is not after its start, a duration is not a
//     multiple of the grid interval, or blocks collide
//   - DOCUMENT_SHAPE: required fields are missing or have the wrong type
//
// The remaining codes cover the surrounding tooling (formats, files, cache).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedTime, "Invalid time format: %s", text).
//	    WithField("Monday[0].Time", text)
//	if errors.Is(err, errors.ErrCodeMalformedTime) {
//	    fmt.Println(errors.UserMessage(err))
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
	// Compile errors
	ErrCodeMalformedTime Code = "MALFORMED_TIME"
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeDocumentShape Code = "DOCUMENT_SHAPE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
// Field and Text locate the problem inside the source document.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Field   string // Offending field path, e.g. "Monday[2].Time"
	Text    string // Offending raw text
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("%s (at %s)", msg, e.Field)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithField records where in the document the error was detected.
// It mutates and returns e so it can be chained on New or Wrap.
func (e *Error) WithField(field, text string) *Error {
	e.Field = field
	e.Text = text
	return e
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
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Field returns the document field path recorded on err, if any.
func Field(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// Text returns the offending raw text recorded on err, if any.
func Text(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Text
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
