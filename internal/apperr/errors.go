// Package apperr defines the error taxonomy shared by the API surface:
// every failure a handler can report carries an HTTP status and a
// client-safe message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured API error.
type Error struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"error"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error: status code %d, message: %s", e.StatusCode, e.Message)
}

func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

func Unauthenticated(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error       { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error        { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error        { return New(http.StatusConflict, message) }
func BadRequest(message string) *Error      { return New(http.StatusBadRequest, message) }

// Status extracts the HTTP status from err, defaulting to 500 for anything
// that is not an *Error.
func Status(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
