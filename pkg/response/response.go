// Package response defines an error type that carries an HTTP status code.
package response

import (
	"errors"
)

// Error pairs an HTTP status code with an underlying error.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Is matches another *Error with the same code and message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// NewError creates a coded error.
func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}
