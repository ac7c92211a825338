// Package errors provides the structured error type used across the assembler.
//
// Errors carry a category (io, parse, config, validation, internal), a stable
// code and, where known, the component and file they concern. Callers inspect
// them with errors.As or the Is* predicates in this package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeReadFailed      = "ERR_READ_FAILED"
	ErrCodeListFailed      = "ERR_LIST_FAILED"
	ErrCodeTransformFailed = "ERR_TRANSFORM_FAILED"
	ErrCodeTemplateInvalid = "ERR_TEMPLATE_INVALID"
	ErrCodeTasksFailed     = "ERR_TASKS_FAILED"
	ErrCodeConfigInvalid   = "ERR_CONFIG_INVALID"
	ErrCodeInvalidVariant  = "ERR_INVALID_VARIANT"
	ErrCodeInvalidName     = "ERR_INVALID_NAME"
	ErrCodeWriteFailed     = "ERR_WRITE_FAILED"
	ErrCodeInternalError   = "ERR_INTERNAL"
)

// AssemblyError is a structured error type with context.
type AssemblyError struct {
	Type      ErrorType
	Code      string
	Message   string
	Cause     error
	Component string
	FilePath  string
	Context   map[string]interface{}
}

// Error implements the error interface.
func (e *AssemblyError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *AssemblyError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AssemblyError of the same type and code.
func (e *AssemblyError) Is(target error) bool {
	var t *AssemblyError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithComponent adds component context.
func (e *AssemblyError) WithComponent(component string) *AssemblyError {
	e.Component = component
	return e
}

// WithFile adds the offending file path.
func (e *AssemblyError) WithFile(path string) *AssemblyError {
	e.FilePath = path
	return e
}

// WithContext adds context information to the error.
func (e *AssemblyError) WithContext(key string, value interface{}) *AssemblyError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *AssemblyError {
	return &AssemblyError{Type: ErrorTypeIO, Code: code, Message: message, Cause: cause}
}

// NewParseError creates a template parse error.
func NewParseError(code, message string, cause error) *AssemblyError {
	return &AssemblyError{Type: ErrorTypeParse, Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *AssemblyError {
	return &AssemblyError{Type: ErrorTypeConfig, Code: code, Message: message}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *AssemblyError {
	return &AssemblyError{Type: ErrorTypeValidation, Code: code, Message: message}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *AssemblyError {
	return &AssemblyError{Type: ErrorTypeInternal, Code: code, Message: message, Cause: cause}
}

// IsIOError checks if an error is I/O related.
func IsIOError(err error) bool {
	return hasType(err, ErrorTypeIO)
}

// IsParseError checks if an error came from template parsing.
func IsParseError(err error) bool {
	return hasType(err, ErrorTypeParse)
}

// IsConfigError checks if an error is configuration related.
func IsConfigError(err error) bool {
	return hasType(err, ErrorTypeConfig)
}

// IsValidationError checks if an error is a validation failure.
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

func hasType(err error, t ErrorType) bool {
	var ae *AssemblyError
	if errors.As(err, &ae) {
		return ae.Type == t
	}

	return false
}
