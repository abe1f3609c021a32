package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for Hugo pipeline errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Oracle error codes
const (
	ORACLE_CONNECTION_FAILED ErrorCode = "ORACLE_CONNECTION_FAILED"
	ORACLE_TIMEOUT           ErrorCode = "ORACLE_TIMEOUT"
	ORACLE_CANCELED          ErrorCode = "ORACLE_CANCELED"
	ORACLE_NON_SUCCESS       ErrorCode = "ORACLE_NON_SUCCESS"
)

// Response validation error codes
const (
	RESPONSE_MALFORMED_JSON   ErrorCode = "RESPONSE_MALFORMED_JSON"
	RESPONSE_SCHEMA_VIOLATION ErrorCode = "RESPONSE_SCHEMA_VIOLATION"
)

// Decision registry error codes
const (
	DECISION_TYPE_NOT_REGISTERED ErrorCode = "DECISION_TYPE_NOT_REGISTERED"
	DECISION_TYPE_ALREADY_EXISTS ErrorCode = "DECISION_TYPE_ALREADY_EXISTS"
)

// Audit error codes
const (
	AUDIT_OPEN_FAILED  ErrorCode = "AUDIT_OPEN_FAILED"
	AUDIT_WRITE_FAILED ErrorCode = "AUDIT_WRITE_FAILED"
)

// HugoError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type HugoError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *HugoError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *HugoError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a HugoError with the same Code.
func (e *HugoError) Is(target error) bool {
	var hugoErr *HugoError
	if errors.As(target, &hugoErr) {
		return e.Code == hugoErr.Code
	}
	return false
}

// NewError creates a new non-retryable HugoError with the given code and message.
func NewError(code ErrorCode, message string) *HugoError {
	return &HugoError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable HugoError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *HugoError {
	return &HugoError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable HugoError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *HugoError {
	return &HugoError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// CodeOf returns the error code carried by err, or an empty code when err
// is not a HugoError.
func CodeOf(err error) ErrorCode {
	var hugoErr *HugoError
	if errors.As(err, &hugoErr) {
		return hugoErr.Code
	}
	return ""
}
