package errors

import (
	"errors"
	"fmt"
)

// Common errors that can be used across packages
var (
	ErrMissingConfig = errors.New("missing required configuration")
)

// ValidationError represents an error that occurs during validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrMissingConfig) match required-field failures
func (e *ValidationError) Unwrap() error {
	if e.Message == "is required" {
		return ErrMissingConfig
	}
	return nil
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// QueryError represents a failed search request for one repository
type QueryError struct {
	Repository string
	StatusCode int
	Wrapped    error
}

func (e *QueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("query for repository %s failed with status %d: %v", e.Repository, e.StatusCode, e.Wrapped)
	}
	return fmt.Sprintf("query for repository %s failed: %v", e.Repository, e.Wrapped)
}

func (e *QueryError) Unwrap() error {
	return e.Wrapped
}

// NewQueryError creates a new QueryError
func NewQueryError(repository string, statusCode int, wrapped error) error {
	return &QueryError{
		Repository: repository,
		StatusCode: statusCode,
		Wrapped:    wrapped,
	}
}

// FileError represents an error that occurs during file operations
type FileError struct {
	Path    string
	Op      string
	Wrapped error
}

func (e *FileError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s operation failed on %s: %v", e.Op, e.Path, e.Wrapped)
	}
	return fmt.Sprintf("%s operation failed on %s", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Wrapped
}

// NewFileError creates a new FileError
func NewFileError(path, op string, wrapped error) error {
	return &FileError{
		Path:    path,
		Op:      op,
		Wrapped: wrapped,
	}
}

// Is reports whether target matches err.
// It enables errors.Is() to work with our custom error types.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// It enables errors.As() to work with our custom error types.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join combines errs, dropping nils
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
