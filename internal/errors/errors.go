package errors

import "fmt"

// ErrorCode represents a Concierge error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// ConciergeError represents a structured error with code, status, and details.
// Dispatch itself never fails; these errors come from the surfaces around it.
type ConciergeError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ConciergeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ConciergeError {
	return &ConciergeError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing resource of the given kind.
func NewNotFound(kind, identifier string) *ConciergeError {
	return &ConciergeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ConciergeError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ConciergeError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ConciergeError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*ConciergeError); ok {
		return cErr.Code == code
	}
	return false
}
