package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorResponse represents the standardized error document written by the
// structured (json/yaml) report formats
type ErrorResponse struct {
	Error ErrorDetail `json:"error" yaml:"error"`
}

// ErrorDetail contains the detailed error information
type ErrorDetail struct {
	Code    string   `json:"code" yaml:"code"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	TraceID string   `json:"trace_id" yaml:"trace_id"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse creates a standardized error response with the given error code and trace ID
// Optional details can be added using functional options
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
			Details: []string{},
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// FromError builds an error response from any error, using the code carried
// by AppError or RowError and the full error chain as the single detail line
func FromError(err error, traceID string) *ErrorResponse {
	code := CodeOf(err)
	opts := []ErrorOption{WithDetails(err.Error())}

	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		opts = append(opts, WithMessage(appErr.Message))
	}

	return NewErrorResponse(code, traceID, opts...)
}

// ToJSON serializes the error response to JSON bytes
func (er *ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(er)
}

// GetExitCode returns the process exit status for an error code
func GetExitCode(code ErrorCode) int {
	switch {
	case strings.HasPrefix(string(code), "INPUT_"):
		return 2
	case strings.HasPrefix(string(code), "ROW_"):
		return 3
	case code == SystemConfigurationError:
		return 4
	default:
		return 1
	}
}

// GetExitCode returns the process exit status for the error response
func (er *ErrorResponse) GetExitCode() int {
	return GetExitCode(ErrorCode(er.Error.Code))
}

// IsInputError returns true if the error concerns the input location or file
func (er *ErrorResponse) IsInputError() bool {
	return strings.HasPrefix(er.Error.Code, "INPUT_")
}

// IsRowError returns true if the error concerns a malformed data row
func (er *ErrorResponse) IsRowError() bool {
	return strings.HasPrefix(er.Error.Code, "ROW_")
}

// String returns a string representation of the error response
func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
