// Package apierror defines the typed HTTP error taxonomy for the API and the
// gin middleware that translates those errors into the stable JSON error
// shape. Handlers never build error responses themselves; they record a typed
// error on the gin context and abort.
package apierror

import (
	"fmt"
	"net/http"
)

// Well-known error codes carried by Error. The auth codes mirror the ones the
// identity provider's quickstarts use so that clients can branch on them.
const (
	CodeAuthHeaderMissing = "authorization_header_missing"
	CodeInvalidHeader     = "invalid_header"
	CodeTokenExpired      = "token_expired"
	CodeInvalidClaims     = "invalid_claims"
	CodeBadRequest        = "bad_request"
	CodeUnauthorized      = "unauthorized"
	CodeNotFound          = "not_found"
	CodeUnprocessable     = "unprocessable"
	CodeInternal          = "internal_error"
)

// Error is a typed HTTP error. Status determines the response status code,
// Code is a stable machine-readable identifier and Message is the human
// readable description placed in the response body.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is allows errors.Is comparisons against another *Error by code, so callers
// can match on a representative error value without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New builds an Error with an explicit status, code and message.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// BadRequest is a 400 caused by a missing or unreadable request body or an
// otherwise invalid input.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, message)
}

// MissingField is a 400 naming the input field that was absent or empty.
func MissingField(field string) *Error {
	return BadRequest(fmt.Sprintf("Field %s is required", field))
}

// DuplicatedField is a 400 raised when a unique field collides with an
// existing record.
func DuplicatedField(field, value string) *Error {
	return BadRequest(fmt.Sprintf("Field %s with %s already exists", field, value))
}

// NotFound is the 404 returned for unknown resource ids.
func NotFound() *Error {
	return New(http.StatusNotFound, CodeNotFound, "resource not found")
}

// Unprocessable is the 422 returned for store failures that are not
// uniqueness conflicts and for upstream management API failures.
func Unprocessable() *Error {
	return New(http.StatusUnprocessableEntity, CodeUnprocessable, "unprocessable")
}
