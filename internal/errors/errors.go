// Package errors defines the typed error taxonomy for the growth-data
// pipeline. Recoverable anomalies (a malformed plate block, a well missing
// from the condition map) are logged and skipped by their callers; the error
// types here mark the conditions that abort a run before output is written.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline errors.
type ErrorType string

const (
	ErrTypeFileRead              ErrorType = "FILE_READ"
	ErrTypeUnsupportedFormat     ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeUnrecognizedLayout    ErrorType = "UNRECOGNIZED_LAYOUT"
	ErrTypeMalformedBlock        ErrorType = "MALFORMED_BLOCK"
	ErrTypeNoDataExtracted       ErrorType = "NO_DATA_EXTRACTED"
	ErrTypeMissingRequiredColumn ErrorType = "MISSING_REQUIRED_COLUMN"
	ErrTypeMissingMappingColumns ErrorType = "MISSING_MAPPING_COLUMNS"
	ErrTypeFileWrite             ErrorType = "FILE_WRITE"
	ErrTypeConfig                ErrorType = "CONFIG"
)

// AppError is an application-specific error carrying its classification and
// optional structured context (file paths, row numbers).
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common error types

// NewFileReadError creates an error for an unreadable or missing input file.
func NewFileReadError(path string, cause error) *AppError {
	return NewAppError(ErrTypeFileRead, fmt.Sprintf("cannot read file %s", path), cause).
		WithContext("path", path)
}

// NewUnsupportedFormatError creates an error for an unrecognized file extension.
func NewUnsupportedFormatError(path, ext string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat,
		fmt.Sprintf("unsupported file format %q for %s: use CSV, XLSX or XLS", ext, path), nil).
		WithContext("path", path).
		WithContext("extension", ext)
}

// NewUnrecognizedLayoutError creates an error for a file matching neither
// known plate-reader layout.
func NewUnrecognizedLayoutError(path string) *AppError {
	return NewAppError(ErrTypeUnrecognizedLayout,
		fmt.Sprintf("no recognizable plate-reader layout in %s - check the file manually", path), nil).
		WithContext("path", path)
}

// NewMalformedBlockError creates a recoverable error for a structurally
// incomplete measurement block.
func NewMalformedBlockError(message string) *AppError {
	return NewAppError(ErrTypeMalformedBlock, message, nil)
}

// NewNoDataExtractedError creates an error for an input that yielded zero
// measurements.
func NewNoDataExtractedError(path string) *AppError {
	return NewAppError(ErrTypeNoDataExtracted,
		fmt.Sprintf("no valid measurement data extracted from %s", path), nil).
		WithContext("path", path)
}

// NewMissingRequiredColumnError creates an error for a columnar input whose
// header row lacks a structural column.
func NewMissingRequiredColumnError(path, column string) *AppError {
	return NewAppError(ErrTypeMissingRequiredColumn,
		fmt.Sprintf("required column %q not found in %s", column, path), nil).
		WithContext("path", path).
		WithContext("column", column)
}

// NewMissingMappingColumnsError creates an error for a condition-mapping file
// lacking the Well or Condition column.
func NewMissingMappingColumnsError(path string) *AppError {
	return NewAppError(ErrTypeMissingMappingColumns,
		fmt.Sprintf("mapping file %s must contain 'Well' and 'Condition' columns", path), nil).
		WithContext("path", path)
}

// NewFileWriteError creates an error for a failed output write.
func NewFileWriteError(path string, cause error) *AppError {
	return NewAppError(ErrTypeFileWrite, fmt.Sprintf("cannot write file %s", path), cause).
		WithContext("path", path)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
