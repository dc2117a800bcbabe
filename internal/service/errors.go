package service

import (
	"errors"
	"strings"
)

// DefaultErrorMessage is reported when a failure carries no message.
const DefaultErrorMessage = "Some error occurred"

var (
	// ErrNotFound is returned when a list or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported is returned when a backend cannot perform an operation.
	ErrUnsupported = errors.New("operation not supported by backend")

	// ErrNotLoggedIn is returned when no session is available.
	ErrNotLoggedIn = errors.New("not logged in")
)

// ResultError is an application-level failure: the backend answered but
// reported a non-OK result code.
type ResultError struct {
	ResultCode   int
	Messages     []string
	FieldsErrors []string
}

func (e *ResultError) Error() string {
	return e.Message()
}

// Message returns the first backend message, or the default message.
func (e *ResultError) Message() string {
	for _, m := range e.Messages {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return DefaultErrorMessage
}

// ErrorMessage extracts the user-facing message for err.
// Application errors yield their first backend message; any other error
// yields its own text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *ResultError
	if errors.As(err, &re) {
		return re.Message()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}
