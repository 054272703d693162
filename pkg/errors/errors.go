// Package errors provides structured error types for the LP toolkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The taxonomy is deliberately small and stable:
//   - NOT_FOUND: missing source file or unknown named entity
//   - PARSE_ERROR: malformed LP syntax, always fatal
//   - STATE_ERROR: operation requiring a completed parse invoked too early
//   - VALIDATION_ERROR: semantically invalid setter input
//   - IO_ERROR: unwritable or missing output target
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValidation, "invalid sense: %s", s)
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the LP toolkit taxonomy.
const (
	// ErrCodeNotFound covers a missing source file at construction time and
	// a named entity (variable, constraint, objective) that does not exist.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeParse covers malformed LP syntax: unknown sections, bad tokens,
	// unterminated expressions, a missing End marker. Never recovered.
	ErrCodeParse Code = "PARSE_ERROR"

	// ErrCodeState covers operations that require a completed parse being
	// invoked on an unparsed problem.
	ErrCodeState Code = "STATE_ERROR"

	// ErrCodeValidation covers semantically invalid setter input, such as an
	// unknown variable kind or an unrecognized sense string.
	ErrCodeValidation Code = "VALIDATION_ERROR"

	// ErrCodeIO covers missing or unwritable output targets.
	ErrCodeIO Code = "IO_ERROR"

	// ErrCodeInternal covers unexpected internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Coder is implemented by domain error types that carry their own code,
// such as the parse and not-found errors in pkg/lp.
type Coder interface {
	error
	Code() Code
}

// Error is a structured error with a code and optional cause.
type Error struct {
	ErrCode Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrCode, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the error code, satisfying [Coder].
func (e *Error) Code() Code {
	return e.ErrCode
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		ErrCode: code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		ErrCode: code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It unwraps the error chain looking for a [Coder] with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
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

// ExitCode maps an error to a stable process exit code so callers can
// discriminate taxonomy members without parsing messages. A nil error
// maps to 0; errors without a recognized code map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ErrCodeNotFound:
		return 2
	case ErrCodeParse:
		return 3
	case ErrCodeState:
		return 4
	case ErrCodeValidation:
		return 5
	case ErrCodeIO:
		return 6
	default:
		return 1
	}
}
