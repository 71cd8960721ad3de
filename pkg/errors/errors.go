// Package errors provides structured error types for the mod database client.
//
// Every failure surfaced by the library carries a machine-readable [Code]:
//
//   - NETWORK_ERROR: the request could not complete (transport failure,
//     unexpected HTTP status, upstream-reported failure)
//   - PARSE_ERROR: the response body did not match the expected shape
//   - NOT_FOUND: the upstream service has no record for the requested ID
//   - EMPTY_COLLECTION: a random pick was attempted on an empty sequence
//   - INVALID_INPUT: the caller passed an unusable argument
//
// # Usage
//
//	mod, err := client.GetMod(ctx, 42)
//	if errors.Is(err, errors.ErrNotFound) {
//	    // no such mod
//	}
//
//	// Or by code:
//	if errors.HasCode(err, errors.ErrCodeParse) { ... }
//
// The sentinel values ([ErrNetwork], [ErrParse], [ErrNotFound],
// [ErrEmptyCollection]) match any [*Error] with the same code under the
// standard library's errors.Is, so callers never need to compare messages.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeNetwork         Code = "NETWORK_ERROR"
	ErrCodeParse           Code = "PARSE_ERROR"
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeEmptyCollection Code = "EMPTY_COLLECTION"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
)

// Sentinels for use with errors.Is. They carry no message and match any
// *Error with the same code.
var (
	ErrNetwork         = &Error{Code: ErrCodeNetwork}
	ErrParse           = &Error{Code: ErrCodeParse}
	ErrNotFound        = &Error{Code: ErrCodeNotFound}
	ErrEmptyCollection = &Error{Code: ErrCodeEmptyCollection}
	ErrInvalidInput    = &Error{Code: ErrCodeInvalidInput}
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Cause == nil:
		return string(e.Code)
	case e.Cause != nil && e.Message == "":
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a code-only sentinel with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Code == e.Code
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

// HasCode reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func HasCode(err error, code Code) bool {
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
