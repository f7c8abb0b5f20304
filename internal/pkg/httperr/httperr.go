package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed request-level failure carrying the HTTP status to surface.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// New creates a typed error with the given status.
func New(status int, format string, args ...interface{}) *Error {
	return &Error{Status: status, Detail: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, format, args...)
}

func ServiceUnavailable(format string, args ...interface{}) *Error {
	return New(http.StatusServiceUnavailable, format, args...)
}

func GatewayTimeout(format string, args ...interface{}) *Error {
	return New(http.StatusGatewayTimeout, format, args...)
}

func BadGateway(format string, args ...interface{}) *Error {
	return New(http.StatusBadGateway, format, args...)
}

// StatusOf returns the HTTP status for err, or 500 for untyped errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// DetailOf returns the user-facing detail for err.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return err.Error()
}
