package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating an AssemblyError if the
// input is not already one. Component and file context of a wrapped
// AssemblyError are carried over.
func Wrap(err error, errType ErrorType, code, message string) *AssemblyError {
	if err == nil {
		return nil
	}

	var ae *AssemblyError
	if errors.As(err, &ae) {
		return &AssemblyError{
			Type:      errType,
			Code:      code,
			Message:   message,
			Cause:     ae,
			Component: ae.Component,
			FilePath:  ae.FilePath,
			Context:   ae.Context,
		}
	}

	return &AssemblyError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapIO wraps an error as an I/O error for the given file.
func WrapIO(err error, code, message, path string) *AssemblyError {
	ae := Wrap(err, ErrorTypeIO, code, message)
	if ae != nil {
		ae.FilePath = path
	}
	return ae
}

// WrapParse wraps a parser failure, naming the template path key that failed.
func WrapParse(err error, pathKey string) *AssemblyError {
	ae := Wrap(err, ErrorTypeParse, ErrCodeTemplateInvalid, "failed to parse template "+pathKey)
	if ae != nil {
		ae.WithContext("template", pathKey)
	}
	return ae
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, message string) *AssemblyError {
	return Wrap(err, ErrorTypeConfig, ErrCodeConfigInvalid, message)
}

// Join combines multiple errors, dropping nils. It returns nil when every
// input is nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
