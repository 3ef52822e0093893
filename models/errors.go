package models

import "fmt"

// Service errors. The HTTP layer maps each type to a status code.

type ErrorForbidden struct{ Message string }

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct{ Message string }

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorConflict struct{ Message string }

func (e ErrorConflict) Error() string { return e.Message }

type ErrorBadRequest struct{ Message string }

func (e ErrorBadRequest) Error() string { return e.Message }

type ErrorUnauthorized struct{ Message string }

func (e ErrorUnauthorized) Error() string { return e.Message }

// ErrorInternalServer keeps the cause for logging; only Message reaches the caller.
type ErrorInternalServer struct {
	Message string
	Cause   error
}

func (e ErrorInternalServer) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e ErrorInternalServer) Unwrap() error { return e.Cause }

const MsgInternal = "Something went wrong, try again later"

func NewInternal(cause error) error {
	return ErrorInternalServer{Message: MsgInternal, Cause: cause}
}

func NotFoundf(format string, args ...any) error {
	return ErrorNotFound{Message: fmt.Sprintf(format, args...)}
}

func BadRequestf(format string, args ...any) error {
	return ErrorBadRequest{Message: fmt.Sprintf(format, args...)}
}
