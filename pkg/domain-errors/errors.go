// Package domainerrors defines the typed error vocabulary shared across the
// service. Services attach a Code at the point of failure; callers branch on
// HasCode instead of string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for callers that need to branch on it
// (dispatcher ack/reject/requeue policy, HTTP status mapping).
type Code string

const (
	CodeNotFound      Code = "not_found"
	CodeInvalidInput  Code = "invalid_input"
	CodeUnauthorized  Code = "unauthorized"
	CodeForbidden     Code = "forbidden"
	CodeConflict      Code = "conflict"
	CodeConfigMissing Code = "config_missing"
	CodeInternal      Code = "internal"
)

// DomainError carries a code, a message, and an optional wrapped cause.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

// New creates a DomainError without a cause.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a DomainError with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable through errors.Is/As.
func Wrap(code Code, message string, cause error) error {
	return &DomainError{Code: code, Message: message, cause: cause}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost DomainError in the chain, or
// CodeInternal when the error is untyped. A nil error has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
