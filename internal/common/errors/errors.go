// Package errors provides standardized error handling for the travel pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeConfigurationMissing: a required credential is absent. The
	// destination flow surfaces it to the caller; the hotel flow degrades
	// to empty results instead.
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"

	// ErrCodeProviderError: the LLM call failed on the wire or returned
	// no content.
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"

	// ErrCodeParseError: the completion text is not valid JSON.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"

	// ErrCodeSchemaError: the completion parsed but failed structural
	// validation. Fatal for the destination batch, non-fatal for ranking.
	ErrCodeSchemaError ErrorCode = "SCHEMA_ERROR"

	// ErrCodeSourceUnavailable: the hotel-search provider could not be
	// reached or resolved. Always degrades to an empty pool.
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
)

// StandardError represents a structured application error. Retryable here
// means a manual retry by the user may succeed; the pipeline itself never
// retries automatically.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigurationMissingError creates a non-retryable credential error.
func NewConfigurationMissingError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderError creates a retryable LLM provider/network error.
func NewProviderError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeProviderError,
		Message:   message,
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates a retryable completion-parse error.
func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   fmt.Sprintf("Failed to parse model response: %v", err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaError creates a retryable structural-validation error. The
// message is shown to the user verbatim, so constructors pass the exact
// index/field wording.
func NewSchemaError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaError,
		Message:   message,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceUnavailableError creates a non-fatal hotel-source error. It is
// logged, never surfaced.
func NewSourceUnavailableError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   message,
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the error code, or "UNKNOWN" for foreign errors. Used
// as a metrics label.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return "UNKNOWN"
}

// Message returns the user-facing message of a StandardError, falling
// back to Error() for foreign errors.
func Message(err error) string {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Message
	}
	return err.Error()
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
