package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Handlers translate these into HTTP
// status codes with errors.Is; the Error() text is the user-visible message.
var (
	ErrValidation   = errors.New("validation")   // 400
	ErrNotFound     = errors.New("not found")    // 404
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrConflict     = errors.New("conflict")     // 409
	ErrUnauthorized = errors.New("unauthorized") // 401
)

type taggedError struct {
	kind error
	msg  string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.kind }

func validationf(format string, args ...any) error {
	return &taggedError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &taggedError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) error {
	return &taggedError{kind: ErrForbidden, msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &taggedError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func unauthorizedf(format string, args ...any) error {
	return &taggedError{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}
