package apperror

import "net/http"

// AppError carries the HTTP status and the message shown to the caller.
// The wrapped error stays internal.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func Wrap(err error, status int, message string) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

// BadRequest reports malformed input.
func BadRequest(err error, message string) *AppError {
	return Wrap(err, http.StatusBadRequest, message)
}

// Unavailable reports a backing store that cannot serve the request right now.
func Unavailable(err error, message string) *AppError {
	return Wrap(err, http.StatusServiceUnavailable, message)
}
