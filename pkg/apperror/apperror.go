package apperror

import (
	"errors"
	"fmt"
)

// Code identifies an error category that controllers can map to an HTTP status.
type Code string

const (
	CodeUnauthenticated      Code = "UNAUTHENTICATED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeNotFound             Code = "NOT_FOUND"
	CodeUnsupportedMediaType Code = "UNSUPPORTED_MEDIA_TYPE"
	CodeUpstreamFailure      Code = "UPSTREAM_FAILURE"
	CodeStepBudgetExhausted  Code = "STEP_BUDGET_EXHAUSTED"
	CodeValidationFailed     Code = "VALIDATION_FAILED"
	CodeConflict             Code = "CONFLICT"
	CodeInternal             Code = "INTERNAL"
)

// AppError carries a taxonomy code alongside a human readable message.
type AppError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Unauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func NotFound(resource string) *AppError {
	return Newf(CodeNotFound, "%s not found", resource)
}

func UnsupportedMediaType(mimeType string) *AppError {
	return Newf(CodeUnsupportedMediaType, "unsupported MIME type: %s", mimeType)
}

func UpstreamFailure(operation string, cause error) *AppError {
	return Wrap(CodeUpstreamFailure, fmt.Sprintf("upstream call failed: %s", operation), cause)
}

// CodeOf extracts the taxonomy code from err, or CodeInternal for plain errors.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
