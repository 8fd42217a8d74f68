package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Recipe metadata errors
	ErrRecipeNotFound  ErrorCode = "RECIPE_NOT_FOUND"
	ErrSessionStart    ErrorCode = "SESSION_START"
	ErrSessionShutdown ErrorCode = "SESSION_SHUTDOWN"

	// FileSystem errors
	ErrDirCreate   ErrorCode = "DIR_CREATE"
	ErrAppendWrite ErrorCode = "APPEND_WRITE"

	// Build/test execution errors
	ErrBuildFailed ErrorCode = "BUILD_FAILED"
)

// DevtoolError represents a structured error with code and details
type DevtoolError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DevtoolError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DevtoolError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DevtoolError) Is(target error) bool {
	var targetErr *DevtoolError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DevtoolError with the given code and message
func New(code ErrorCode, message string) *DevtoolError {
	return &DevtoolError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DevtoolError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DevtoolError {
	return &DevtoolError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DevtoolError
func Wrap(err error, code ErrorCode, message string) *DevtoolError {
	if err == nil {
		return nil
	}
	return &DevtoolError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DevtoolError {
	if err == nil {
		return nil
	}
	return &DevtoolError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DevtoolError) WithDetail(key string, value interface{}) *DevtoolError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not DevtoolErrors
func GetCode(err error) ErrorCode {
	var devtoolErr *DevtoolError
	if errors.As(err, &devtoolErr) {
		return devtoolErr.Code
	}
	return ErrUnknown
}

// IsCode checks whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
