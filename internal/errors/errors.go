package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an error carrying a standardized code and the underlying cause
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// New creates an AppError with the default message for code
func New(code ErrorCode, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: GetErrorMessage(code),
		Err:     err,
	}
}

// Newf creates an AppError with a formatted message
func Newf(code ErrorCode, err error, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// RowError identifies a malformed input line
type RowError struct {
	Line   int
	Code   ErrorCode
	Reason string
	Err    error
}

// NewRowError creates a RowError; reason defaults to the code's message
func NewRowError(line int, code ErrorCode, reason string, err error) *RowError {
	if reason == "" {
		reason = GetErrorMessage(code)
	}
	return &RowError{
		Line:   line,
		Code:   code,
		Reason: reason,
		Err:    err,
	}
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Reason)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the ErrorCode from err, falling back to SystemInternalError
func CodeOf(err error) ErrorCode {
	var rowErr *RowError
	if stderrors.As(err, &rowErr) {
		return rowErr.Code
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return SystemInternalError
}
