// Package cerr defines the core layer errors. Each Error wraps another
// error and carries the HTTP status code which should be reported to
// the REST API clients, so the use cases may choose a proper status
// code without depending on any web framework.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// PreconditionFailed is used when a request is well-formed but lacks
// some mandatory fields, e.g., creation of a car without its color.
func PreconditionFailed(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusPreconditionFailed}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

func Internal(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusInternalServerError}
}

// StatusCode returns the HTTP status code of the first *Error which
// is found in the err chain, or 500 if err carries no *Error.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err carries a 404 status code.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
