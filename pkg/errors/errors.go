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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Project discovery and creation
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrNotADirectory  ErrorCode = "NOT_A_DIRECTORY"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Input file errors
	ErrMalformedLine    ErrorCode = "MALFORMED_LINE"
	ErrInvalidSelection ErrorCode = "INVALID_SELECTION"
	ErrInvalidOverwrite ErrorCode = "INVALID_OVERWRITE"

	// Template errors
	ErrTemplateParse  ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"

	// Execution errors
	ErrCommandExecute ErrorCode = "COMMAND_EXECUTE"
	ErrCommandSyntax  ErrorCode = "COMMAND_SYNTAX"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// AnekError represents a structured error with code and details
type AnekError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AnekError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AnekError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AnekError) Is(target error) bool {
	var targetErr *AnekError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AnekError with the given code and message
func New(code ErrorCode, message string) *AnekError {
	return &AnekError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AnekError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AnekError {
	return &AnekError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AnekError
func Wrap(err error, code ErrorCode, message string) *AnekError {
	if err == nil {
		return nil
	}
	return &AnekError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AnekError {
	if err == nil {
		return nil
	}
	return &AnekError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AnekError) WithDetail(key string, value interface{}) *AnekError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var anekErr *AnekError
	if errors.As(err, &anekErr) {
		return anekErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AnekError
func GetErrorCode(err error) ErrorCode {
	var anekErr *AnekError
	if errors.As(err, &anekErr) {
		return anekErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AnekError
func GetErrorDetails(err error) map[string]interface{} {
	var anekErr *AnekError
	if errors.As(err, &anekErr) {
		return anekErr.Details
	}
	return nil
}
