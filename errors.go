package haml

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// SyntaxError represents errors in the source markup that cannot be
	// translated, such as an unrecognized DOCTYPE public identifier
	SyntaxError ErrorType = "syntax_error"

	// ParseError represents parsing-related errors
	ParseError ErrorType = "parse_error"

	// EncodingError represents invalid input encoding
	EncodingError ErrorType = "encoding_error"

	// FetchError represents errors retrieving a remote document
	FetchError ErrorType = "fetch_error"

	// IOError represents I/O-related errors
	IOError ErrorType = "io_error"

	// ConfigError represents configuration-related errors
	ConfigError ErrorType = "config_error"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string
	Line    int // source line for encoding errors, 0 otherwise
}

// Error implements the error interface
func (e *AppError) Error() string {
	switch {
	case e.Line > 0 && e.Err != nil:
		return fmt.Sprintf("[%s] %s on line %d: %v", e.Type, e.Message, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("[%s] %s on line %d", e.Type, e.Message, e.Line)
	case e.Err != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	default:
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
}

// Unwrap implements the error unwrapping interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *AppError {
	return &AppError{
		Type:    SyntaxError,
		Message: message,
		Code:    "SYN001",
	}
}

// NewParseError creates a new parsing error
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ParseError,
		Message: message,
		Err:     err,
		Code:    "PARSE001",
	}
}

// NewEncodingError creates a new encoding error with the offending line
func NewEncodingError(message string, line int) *AppError {
	return &AppError{
		Type:    EncodingError,
		Message: message,
		Line:    line,
		Code:    "ENC001",
	}
}

// NewFetchError creates a new fetch error
func NewFetchError(message string, err error) *AppError {
	return &AppError{
		Type:    FetchError,
		Message: message,
		Err:     err,
		Code:    "FETCH001",
	}
}

// NewIOError creates a new I/O error
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Type:    IOError,
		Message: message,
		Err:     err,
		Code:    "IO001",
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *AppError {
	return &AppError{
		Type:    ConfigError,
		Message: message,
		Code:    "CONF001",
	}
}
