// Package core holds the layout engine's error taxonomy, shared by every
// other package: spec.md §7 distinguishes two recoverable conditions
// (OutOfMemory, SizeLimitExceeded) from everything else, which is a
// programmer error and panics rather than returning an error value.
package core

import (
	"errors"
	"fmt"
	"os"
)

// Error codes for the layout core's two recoverable failure conditions.
const (
	NOERROR          int = 0
	EOUTOFMEMORY     int = 131 // allocator exhausted
	ESIZELIMITEXCEED int = 132 // a structural size limit was exceeded
	EINTERNAL        int = 133 // should not happen; indicates a bug
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EOUTOFMEMORY:
		return "out of memory"
	case ESIZELIMITEXCEED:
		return "size limit exceeded"
	case EINTERNAL:
		return "internal error"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain. Unlike
// pkg/errors, ErrorWithCode will wrap a nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error. If no status
// code is found, it returns EINTERNAL. If err is nil, NOERROR is
// returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// OutOfMemory wraps err (or creates a fresh error) as an OutOfMemory
// condition, the only allocator failure a Layout run surfaces to its
// caller instead of panicking.
func OutOfMemory(err error) error {
	return WrapError(err, EOUTOFMEMORY, "layout allocator exhausted")
}

// SizeLimitExceeded reports that a structural size limit (tree depth,
// glyph stream length, box count) was exceeded.
func SizeLimitExceeded(format string, v ...interface{}) error {
	return Error(ESIZELIMITEXCEED, format, v...)
}

func UserError(err error) {
	if e, ok := err.(AppError); ok {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
