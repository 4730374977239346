// Package errors gives pumlgen failures a stable code.
//
// The model, io and sink packages report problems with their own sentinel
// and typed errors. When a failure leaves the pipeline it is wrapped in an
// [*Error] so the command line can print the message without internals and
// exit with a status that scripts can branch on ([ExitCode]).
//
//	err := errors.Wrap(errors.ErrCodeInvalidModel, cause, "read %s", path)
//	if errors.Is(err, errors.ErrCodeInvalidModel) {
//	    fmt.Println(errors.UserMessage(err))
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable failure category.
type Code string

const (
	// Bad flags, arguments or project file.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// The model file cannot be turned into diagrams.
	ErrCodeInvalidModel    Code = "INVALID_MODEL"
	ErrCodeDuplicateEntity Code = "DUPLICATE_ENTITY"
	ErrCodeMissingContext  Code = "MISSING_CONTEXT"

	// Filesystem.
	ErrCodeOutputNotEmpty Code = "OUTPUT_NOT_EMPTY"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a Code with a message naming the offending entity or path.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error without a cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the error without its code prefix. For an *Error with
// a cause, the cause is appended so the offending entity or path is named.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for usage and
// configuration problems, 3 for models that cannot be generated, 4 for
// output and file problems and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig:
		return 2
	case ErrCodeInvalidModel, ErrCodeDuplicateEntity, ErrCodeMissingContext:
		return 3
	case ErrCodeOutputNotEmpty, ErrCodeFileNotFound:
		return 4
	default:
		return 1
	}
}
