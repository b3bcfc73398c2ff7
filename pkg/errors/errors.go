package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNotAuthenticated = "NOT_AUTHENTICATED"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeRemoteRejected   = "REMOTE_REJECTED"
	ErrCodeTransport        = "TRANSPORT_FAILURE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Code extracts the AppError code from err, or ErrCodeInternalError
// when err is not an AppError.
func Code(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternalError
}
