package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type ErrorType string

const (
	ErrorTypeInputNotFound     ErrorType = "INPUT_NOT_FOUND"
	ErrorTypeInvalidJSON       ErrorType = "INVALID_JSON"
	ErrorTypeInvalidShape      ErrorType = "INVALID_SHAPE"
	ErrorTypeValidation        ErrorType = "VALIDATION_FAILURE"
	ErrorTypeBatchTimeout      ErrorType = "BATCH_TIMEOUT"
	ErrorTypeStoreWriteFailure ErrorType = "STORE_WRITE_FAILURE"
	ErrorTypeConfig            ErrorType = "CONFIG_ERROR"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingKey       ErrorCode = "MISSING_UNIQUE_KEY"
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"
	ErrCodeHoursNegative    ErrorCode = "HOURS_NEGATIVE"
	ErrCodeHoursTooHigh     ErrorCode = "HOURS_TOO_HIGH"

	ErrCodeInputNotFound ErrorCode = "INPUT_NOT_FOUND"
	ErrCodeInputRead     ErrorCode = "INPUT_READ_FAILED"
	ErrCodeInvalidJSON   ErrorCode = "INVALID_JSON"
	ErrCodeNotAnArray    ErrorCode = "NOT_AN_ARRAY"

	ErrCodeBatchTimeout ErrorCode = "BATCH_TIMEOUT"
	ErrCodeBatchFailed  ErrorCode = "BATCH_FAILED"

	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// AppError is the typed failure returned by every pipeline stage.
type AppError struct {
	Type    ErrorType   `json:"type"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Cause   error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins every field violation with "; ", falling back to Message.
func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewInputNotFoundError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInputNotFound,
		Code:    ErrCodeInputNotFound,
		Message: fmt.Sprintf("input file not found: %s", path),
		Cause:   cause,
	}
}

func NewInvalidJSONError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidJSON,
		Code:    ErrCodeInvalidJSON,
		Message: fmt.Sprintf("input file is not valid JSON: %s", path),
		Cause:   cause,
	}
}

func NewInvalidShapeError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidShape,
		Code:    ErrCodeNotAnArray,
		Message: fmt.Sprintf("input JSON must be an array of records: %s", path),
		Cause:   cause,
	}
}

func NewBatchTimeoutError(batch int, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeBatchTimeout,
		Code:    ErrCodeBatchTimeout,
		Message: fmt.Sprintf("batch %d timed out", batch),
		Cause:   cause,
	}
}

func NewStoreWriteError(batch int, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStoreWriteFailure,
		Code:    ErrCodeBatchFailed,
		Message: fmt.Sprintf("batch %d failed to commit", batch),
		Cause:   cause,
	}
}

func NewConfigError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Code:    ErrCodeInvalidConfig,
		Message: message,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   cause,
	}
}

// IsAppError finds the first *AppError in err's chain.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == t
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
