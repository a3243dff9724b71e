// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for request bodies or HTTPError for API responses)
// to ensure the client receives meaningful and consistent error
// envelopes while internal details stay in the logs.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "phone", "error": "is required" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "phone").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Kind classifies an HTTPError independently of its status code.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindStore      Kind = "store"
	KindInternal   Kind = "internal"
)

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: the envelope "message".
//   - Detail: the envelope "error", omitted when empty.
//   - Status: HTTP status code.
//   - Errors: per-field errors, logged only.
type HTTPError struct {
	Code    string       `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Detail  string       `json:"error,omitempty"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`

	// cause is the underlying error, never sent to clients.
	cause error
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is also a *HTTPError.
//
// It does NOT compare Code/Status, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	c := *e
	c.Message = message
	return &c
}

// WithCause returns a copy of this HTTPError wrapping cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	c := *e
	c.cause = cause
	return &c
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
