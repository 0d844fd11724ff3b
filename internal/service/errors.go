package service

import "fmt"

// Error is a service-level error carrying the API error code. Handlers map it
// to an HTTP status via models.HTTPStatusForErrorCode.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
