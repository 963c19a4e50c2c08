package errors

// ErrorCode represents a standardized error code used throughout the tool
type ErrorCode string

// Input error codes (INPUT_*)
const (
	InputNotFound    ErrorCode = "INPUT_001"
	InputUnreadable  ErrorCode = "INPUT_002"
	InputInvalidURI  ErrorCode = "INPUT_003"
	InputMissingPath ErrorCode = "INPUT_004"
)

// Row error codes (ROW_*)
const (
	RowFieldCount      ErrorCode = "ROW_001"
	RowQuotedField     ErrorCode = "ROW_002"
	RowInvalidDate     ErrorCode = "ROW_003"
	RowInvalidQuantity ErrorCode = "ROW_004"
	RowInvalidPrice    ErrorCode = "ROW_005"
	RowValidation      ErrorCode = "ROW_006"
)

// Report error codes (REPORT_*)
const (
	ReportInvalidFormat ErrorCode = "REPORT_001"
	ReportExportFailed  ErrorCode = "REPORT_002"
	ReportRenderFailed  ErrorCode = "REPORT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemConfigurationError ErrorCode = "SYSTEM_002"
	SystemMetricsError       ErrorCode = "SYSTEM_003"
	SystemCancelled          ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Input errors
	InputNotFound:    "Sales data file not found",
	InputUnreadable:  "Sales data file could not be read",
	InputInvalidURI:  "Invalid storage URI",
	InputMissingPath: "Sales data location is required",

	// Row errors
	RowFieldCount:      "Row must have exactly 4 comma-separated fields",
	RowQuotedField:     "Quoted fields are not supported",
	RowInvalidDate:     "Date must be in YYYY-MM-DD form",
	RowInvalidQuantity: "Quantity must be a non-negative integer",
	RowInvalidPrice:    "Price must be a non-negative decimal number",
	RowValidation:      "Row failed validation",

	// Report errors
	ReportInvalidFormat: "Unsupported report format",
	ReportExportFailed:  "Report export failed",
	ReportRenderFailed:  "Report rendering failed",

	// System errors
	SystemInternalError:      "An unexpected error occurred",
	SystemConfigurationError: "System configuration error",
	SystemMetricsError:       "Metrics could not be written",
	SystemCancelled:          "Run was cancelled",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
