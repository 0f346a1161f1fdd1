package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrContention indicates that a unit of work lost a lock or serialization
// conflict and was rolled back in full. Callers may retry.
var ErrContention = errors.New("transient contention, retry the operation")

// ErrInternal indicates an unexpected failure inside the storage layer or a
// sub-operation of a unit of work. The whole unit has been rolled back.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status-like code and a message.
// Repositories use it to annotate failures without losing the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap allows errors.Is/As to see through the wrapper.
func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}
