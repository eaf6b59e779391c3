package errors

import (
	"fmt"
)

// Error types for the response validation framework
type ErrorType string

const (
	// Parsing and classification errors
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeSchema   ErrorType = "schema"
	ErrorTypeLanguage ErrorType = "language"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// ParseError represents a parse error at a specific source location. It is
// carried inside validation results as data; the framework never aborts a
// batch because a snippet failed to parse.
type ParseError struct {
	Type       ErrorType
	Line       int
	Column     int
	Token      string
	Underlying error
}

// NewParseError creates a new parse error
func NewParseError(line, column int, token string, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		Line:       line,
		Column:     column,
		Token:      token,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("syntax error at line %d, column %d (near %q): %v",
			e.Line, e.Column, e.Token, e.Underlying)
	}
	return fmt.Sprintf("syntax error at line %d, column %d: %v", e.Line, e.Column, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
	}
	return fmt.Sprintf("config error for field %s: %v", e.Field, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// UnsupportedLanguageError is returned as data inside verdicts when a caller
// asks for a language the framework does not know.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("Unsupported language: %s", e.Language)
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error, dropping nil entries
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
