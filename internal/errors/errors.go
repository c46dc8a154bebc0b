package errors

import (
	"fmt"
)

// MarkError is the structured error type for pagemark.
// It provides context for error handling, logging, and user presentation.
type MarkError struct {
	// Code is the unique error code (e.g., "ERR_303_HTTP_STATUS").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Network, Backend, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if re-triggering the action may succeed.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *MarkError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *MarkError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with MarkError.
func (e *MarkError) Is(target error) bool {
	if t, ok := target.(*MarkError); ok {
		return e.Code == t.Code
	}
	return false
}

// UserMessage returns the text shown to the user. Backend-reported
// errors are surfaced verbatim; everything else keeps the code prefix.
func (e *MarkError) UserMessage() string {
	if e.Category == CategoryBackend {
		return e.Message
	}
	return e.Error()
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *MarkError) WithDetail(key, value string) *MarkError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *MarkError) WithSuggestion(suggestion string) *MarkError {
	e.Suggestion = suggestion
	return e
}

// New creates a new MarkError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *MarkError {
	return &MarkError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a MarkError from an existing error.
// The error's message becomes the MarkError message.
func Wrap(code string, err error) *MarkError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *MarkError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// NetworkError creates a transport-related error.
// Network errors are retryable by the user.
func NetworkError(message string, cause error) *MarkError {
	return New(ErrCodeNetworkUnavailable, message, cause)
}

// StatusError creates an error for a non-2xx HTTP response.
func StatusError(status string, code int) *MarkError {
	return New(ErrCodeHTTPStatus, fmt.Sprintf("HTTP error: %s", status), nil).
		WithDetail("status_code", fmt.Sprintf("%d", code))
}

// BackendError creates an error for a backend-reported error field.
// The backend message is surfaced to the user verbatim.
func BackendError(message string) *MarkError {
	return New(ErrCodeBackendError, message, nil)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *MarkError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *MarkError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a MarkError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if me, ok := err.(*MarkError); ok {
		return me.Retryable
	}
	return false
}

// GetCode extracts the error code from a MarkError.
// Returns empty string if not a MarkError.
func GetCode(err error) string {
	if me, ok := err.(*MarkError); ok {
		return me.Code
	}
	return ""
}

// GetCategory extracts the category from a MarkError.
// Returns empty string if not a MarkError.
func GetCategory(err error) Category {
	if me, ok := err.(*MarkError); ok {
		return me.Category
	}
	return ""
}

// UserText returns the user-facing message for any error.
func UserText(err error) string {
	if err == nil {
		return ""
	}
	if me, ok := err.(*MarkError); ok {
		return me.UserMessage()
	}
	return err.Error()
}
