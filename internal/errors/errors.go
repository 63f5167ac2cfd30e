package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeParsing     ErrorType = "PARSING"
	ErrTypeColumn      ErrorType = "COLUMN_NOT_FOUND"
	ErrTypeColumnType  ErrorType = "COLUMN_TYPE"
	ErrTypeEmptyColumn ErrorType = "EMPTY_COLUMN"
	ErrTypeNoDataset   ErrorType = "NO_DATASET"
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeStorage     ErrorType = "STORAGE"
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

// IsType reports whether err (or any error it wraps) is an AppError of
// the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// TypeOf returns the error type of err, or the empty string when err is
// not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Helper functions for common error types

// NewNotFoundError creates an error for a dataset file that does not exist
func NewNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("dataset file %s was not found", path), cause).
		WithContext("path", path)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewColumnNotFoundError creates an error for an unknown column reference
func NewColumnNotFoundError(column string, available []string) *AppError {
	return NewAppError(ErrTypeColumn, fmt.Sprintf("column %q not found in dataset", column), nil).
		WithContext("column", column).
		WithContext("available_columns", available)
}

// NewColumnTypeError creates an error for a numeric operation on a
// non-numeric column
func NewColumnTypeError(column, actualType string) *AppError {
	return NewAppError(ErrTypeColumnType, fmt.Sprintf("column %q is not numeric (type %s)", column, actualType), nil).
		WithContext("column", column).
		WithContext("type", actualType)
}

// NewEmptyColumnError creates an error for an aggregate over zero valid values
func NewEmptyColumnError(column string) *AppError {
	return NewAppError(ErrTypeEmptyColumn, fmt.Sprintf("column %q has no valid values after excluding missing", column), nil).
		WithContext("column", column)
}

// NewNoDatasetError creates an error for operations before any load
func NewNoDatasetError() *AppError {
	return NewAppError(ErrTypeNoDataset, "no dataset loaded, load a dataset first", nil)
}

// NewConfigError creates a configuration-related error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}
