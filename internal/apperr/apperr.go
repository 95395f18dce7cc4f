// Package apperr carries the error codes the API exposes to clients. The
// frontend branches on these codes, so each failure class keeps a distinct
// one.
package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeMissingParameters      Code = "MISSING_PARAMETERS"
	CodeInvalidModeParameter   Code = "INVALID_MODE_PARAMETER"
	CodeInvalidParameterFormat Code = "INVALID_PARAMETER_FORMAT"
	CodeValidationError        Code = "VALIDATION_ERROR"
	CodeNotFound               Code = "NOT_FOUND"
	CodeNoQuestionsFound       Code = "NO_QUESTIONS_FOUND"
	CodeAIServiceUnavailable   Code = "AI_SERVICE_UNAVAILABLE"
	CodeSerializationError     Code = "SERIALIZATION_ERROR"
	CodeInternal               Code = "INTERNAL"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HTTPStatus maps the code to its response status: 400 for client input
// errors, 404 for not-found conditions, 503 for an unreachable or
// misconfigured upstream, 500 otherwise.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeMissingParameters, CodeInvalidModeParameter, CodeInvalidParameterFormat, CodeValidationError:
		return http.StatusBadRequest
	case CodeNotFound, CodeNoQuestionsFound:
		return http.StatusNotFound
	case CodeAIServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// From extracts an *Error from err, or wraps it as INTERNAL with a generic
// message so internals never leak to the caller.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Code: CodeInternal, Message: "internal server error", Err: err}
}

func Is(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
