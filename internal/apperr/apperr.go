// Package apperr defines the error taxonomy shared by services, handlers and
// upstream clients. Every failure that reaches a client is one of these,
// carrying a machine code and optional per-field details.
package apperr

import (
	"errors"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

const (
	CodeValidation         Code = "VALIDATION"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeMethodNotAllowed   Code = "METHOD_NOT_ALLOWED"
	CodeUpstream           Code = "UPSTREAM"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus maps an error code to its response status. Invalid credentials
// deliberately map to 400, matching the token endpoint contract.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeInvalidCredentials:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message and optional field details.
type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation creates a 400 error with per-field messages.
func Validation(message string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

// InvalidCredentials creates the uniform bad-credentials error. The message
// never says whether the email or the password was wrong.
func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "unable to authenticate with provided credentials"}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// NotFound creates a 404 error. Cross-owner access reports the same error as
// a genuinely missing row.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Upstream wraps a failed outbound call as a 502 error.
func Upstream(message string, cause error) *Error {
	return &Error{Code: CodeUpstream, Message: message, cause: cause}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", cause: cause}
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
