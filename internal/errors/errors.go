package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Selah error code.
type ErrorCode string

const (
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING" // 400
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrFileNotFound        ErrorCode = "FILE_NOT_FOUND"       // 404
	ErrConflict            ErrorCode = "CONFLICT"             // 409
	ErrInternal            ErrorCode = "INTERNAL"             // 500
	ErrStorage             ErrorCode = "STORAGE"              // 503
)

// SelahError represents a structured error with code, status, and details.
type SelahError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *SelahError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *SelahError) Unwrap() error {
	return e.Err
}

// NewAmbiguousAddressing creates a 400 error for when both id and day are provided.
func NewAmbiguousAddressing() *SelahError {
	return &SelahError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both id and day; use one addressing mode",
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SelahError {
	return &SelahError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an entry cannot be found.
func NewNotFound(identifier string) *SelahError {
	return &SelahError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFileNotFound creates a 404 error for a missing import file.
func NewFileNotFound(path string) *SelahError {
	return &SelahError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *SelahError {
	return &SelahError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewStorage creates a 503 error for a persistence slot that could not be
// read, decoded, or written. op names the failed step ("read", "decode", "write").
func NewStorage(op string, err error) *SelahError {
	msg := fmt.Sprintf("storage %s failed", op)
	if err != nil {
		msg = fmt.Sprintf("storage %s failed: %v", op, err)
	}
	return &SelahError{
		Code:    ErrStorage,
		Status:  503,
		Message: msg,
		Details: map[string]any{"op": op},
		Err:     err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *SelahError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &SelahError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Err:     err,
	}
}

// Is checks if an error is (or wraps) a SelahError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *SelahError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}

// As returns the SelahError in err's chain, or nil.
func As(err error) *SelahError {
	var sErr *SelahError
	if stderrors.As(err, &sErr) {
		return sErr
	}
	return nil
}
