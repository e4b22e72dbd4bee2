package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is the machine-readable category returned to API clients.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeInvalidState ErrorCode = "INVALID_STATE"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeInternal     ErrorCode = "INTERNAL"
)

// Error carries a category and a user-facing message. Persistence errors are
// never wrapped into the Message; the cause is kept for server-side logging
// only.
type Error struct {
	Code          ErrorCode
	Message       string
	MissingFields []string
	cause         error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As and the request logger.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidationError builds a VALIDATION error enumerating the missing fields.
func NewValidationError(missing ...string) *Error {
	if len(missing) == 0 {
		return &Error{Code: CodeValidation, Message: "validation failed"}
	}
	return &Error{
		Code:          CodeValidation,
		Message:       fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		MissingFields: missing,
	}
}

// Validationf builds a VALIDATION error with a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NOT_FOUND error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a CONFLICT error.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidStatef builds an INVALID_STATE error.
func InvalidStatef(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Unauthorizedf builds an UNAUTHORIZED error.
func Unauthorizedf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected persistence failure. The cause stays out of
// the client-visible message.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", cause: cause}
}

// AsError extracts a taxonomy error, or classifies err as INTERNAL.
func AsError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return Internal(err)
}
