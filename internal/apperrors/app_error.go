package apperrors

import "fmt"

// AppError carries an HTTP-ish status code and a message alongside the wrapped
// underlying error. Repositories use it to attach context to low-level
// failures without losing the original cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap allows errors.Is / errors.As to reach the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}
