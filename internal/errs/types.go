package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - detail: text for the envelope "error" field
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
func NewBadRequestError(message, detail string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Kind:    KindValidation,
		Message: message,
		Detail:  detail,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Kind:    KindNotFound,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Kind:    KindInternal,
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewStoreError creates a 500 HTTPError for a failed document store call.
// The cause is kept for logging and is not part of the response.
func NewStoreError(code string, cause error) *HTTPError {
	if code == "" {
		code = "STORE_ERROR"
	}

	return &HTTPError{
		Code:    code,
		Kind:    KindStore,
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}
