package warctext

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to fatal versus recoverable
// outcomes. Per-record anomalies (wrong record type, missing header) are not
// errors at all; the parser signals them with a nil record.
const (
	ECONFIG   = "config"    // invalid output destination or overwrite policy
	EEXTRACT  = "extract"   // a text extractor failed on well-formed content
	EINTERNAL = "internal"  // unexpected internal error
	EINVALID  = "invalid"   // malformed value construction
	ENOTFOUND = "not_found" // no extractor matched the content type
)

// Error represents an application-specific error. Errors can be unwrapped to
// find the root cause.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string

	// Wrapped error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
