package readability

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the category of an error
type ErrorType string

// Error types
const (
	ParseError      ErrorType = "parse"
	ExtractionError ErrorType = "extraction"
	ValidationError ErrorType = "validation"
	TimeoutError    ErrorType = "timeout"
)

// Common errors that can be used throughout the package
var (
	ErrNoDocument    = errors.New("no document to parse")
	ErrDocumentLarge = errors.New("document too large")
	ErrNoContent     = errors.New("could not extract article content")
	ErrTimeout       = errors.New("operation timed out")
)

// WrapError wraps an error with context information
func WrapError(err error, errorType ErrorType, funcName, message string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		return fmt.Errorf("[%s:%s] %w", errorType, funcName, err)
	}
	return fmt.Errorf("[%s:%s] %s: %w", errorType, funcName, message, err)
}

// WrapParseError wraps a parsing error
func WrapParseError(err error, funcName, message string) error {
	return WrapError(err, ParseError, funcName, message)
}

// WrapExtractionError wraps an extraction error
func WrapExtractionError(err error, funcName, message string) error {
	return WrapError(err, ExtractionError, funcName, message)
}

// WrapValidationError wraps a validation error
func WrapValidationError(err error, funcName, message string) error {
	return WrapError(err, ValidationError, funcName, message)
}

// WrapTimeoutError wraps a timeout error
func WrapTimeoutError(err error, funcName, message string) error {
	return WrapError(err, TimeoutError, funcName, message)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), fmt.Sprintf("[%s:", errorType))
}

// IsParseError returns true if the error is a parse error
func IsParseError(err error) bool {
	return IsErrorType(err, ParseError)
}

// IsExtractionError returns true if the error is an extraction error
func IsExtractionError(err error) bool {
	return IsErrorType(err, ExtractionError)
}

// IsValidationError returns true if the error is a validation error
func IsValidationError(err error) bool {
	return IsErrorType(err, ValidationError)
}

// IsTimeoutError returns true if the error is a timeout error
func IsTimeoutError(err error) bool {
	return IsErrorType(err, TimeoutError)
}
