package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents common error identifiers reused across the API.
type ErrorCode string

const (
	ErrValidation   ErrorCode = "validation_error"
	ErrConflict     ErrorCode = "conflict"
	ErrNotFound     ErrorCode = "not_found"
	ErrUnauthorized ErrorCode = "unauthorized"
	ErrForbidden    ErrorCode = "forbidden"
	ErrInternal     ErrorCode = "internal_error"
)

// AppError carries additional metadata beyond a regular error.
type AppError struct {
	err        error
	message    string
	code       ErrorCode
	httpStatus int
}

// New creates a new AppError with supplied details.
func New(message string, status int, code ErrorCode, err error) *AppError {
	return &AppError{
		err:        err,
		message:    message,
		httpStatus: status,
		code:       code,
	}
}

// InvalidArgument builds a 400 validation error.
func InvalidArgument(message string, err error) *AppError {
	return New(message, http.StatusBadRequest, ErrValidation, err)
}

// Unauthorized builds a 401 error for requests lacking a viewer identity.
func Unauthorized(message string, err error) *AppError {
	return New(message, http.StatusUnauthorized, ErrUnauthorized, err)
}

// Forbidden builds a 403 error for identities with insufficient entitlement.
func Forbidden(message string, err error) *AppError {
	return New(message, http.StatusForbidden, ErrForbidden, err)
}

// NotFound builds a 404 error for missing referenced entities.
func NotFound(message string, err error) *AppError {
	return New(message, http.StatusNotFound, ErrNotFound, err)
}

// Conflict builds a 409 error for duplicate ratings, titles, or episode numbers.
func Conflict(message string, err error) *AppError {
	return New(message, http.StatusConflict, ErrConflict, err)
}

// Internal builds a 500 error surfacing the underlying message.
func Internal(message string, err error) *AppError {
	return New(message, http.StatusInternalServerError, ErrInternal, err)
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// Message returns a safe error message for clients.
func (e *AppError) Message() string {
	return e.message
}

// StatusCode returns the HTTP status to use for this error.
func (e *AppError) StatusCode() int {
	return e.httpStatus
}

// Code returns the application level error code.
func (e *AppError) Code() ErrorCode {
	return e.code
}

// Is wraps errors.Is against the underlying error or the AppError itself.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.code == code
	}
	return false
}

// Wrap converts a standard error into an AppError if needed.
func Wrap(err error, message string, status int, code ErrorCode) *AppError {
	if err == nil {
		return nil
	}
	if appErr := new(AppError); errors.As(err, &appErr) {
		return appErr
	}
	return New(message, status, code, err)
}
