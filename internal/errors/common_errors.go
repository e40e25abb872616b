// Package errors defines the error taxonomy of the report pipeline.
//
// Two failure classes are fatal to a run: DATA_ACCESS (a file or directory
// cannot be read or written) and FORMAT (input cannot be parsed as tabular
// data). CONFIG and VALIDATION cover the report layout and the opt-in strict
// reshape modes. Missing chart data is never an error.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDataAccess ErrorType = "DATA_ACCESS"
	ErrTypeFormat     ErrorType = "FORMAT"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewDataAccessError creates an error for a file or directory that cannot be read or written
func NewDataAccessError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataAccess, message, cause)
}

// NewFormatError creates an error for input that is not valid tabular data
func NewFormatError(message string, cause error) *AppError {
	return NewAppError(ErrTypeFormat, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// IsType reports whether any error in err's chain is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// IsDataAccess reports whether err is a DATA_ACCESS error.
func IsDataAccess(err error) bool {
	return IsType(err, ErrTypeDataAccess)
}

// IsFormat reports whether err is a FORMAT error.
func IsFormat(err error) bool {
	return IsType(err, ErrTypeFormat)
}
