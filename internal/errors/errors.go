package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a curator error code.
type ErrorCode string

const (
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING" // 400
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrInvalidDay          ErrorCode = "INVALID_DAY"          // 400
	ErrInvalidIndex        ErrorCode = "INVALID_INDEX"        // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrFileNotFound        ErrorCode = "FILE_NOT_FOUND"       // 404
	ErrConflict            ErrorCode = "CONFLICT"             // 409
	ErrValidationFailed    ErrorCode = "VALIDATION_FAILED"    // 422
	ErrCollaboratorFailed  ErrorCode = "COLLABORATOR_FAILED"  // 502
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// CuratorError represents a structured error with code, status, and details.
type CuratorError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CuratorError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAmbiguousAddressing creates a 400 error for when both a story ID and a display index are provided.
func NewAmbiguousAddressing() *CuratorError {
	return &CuratorError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both id and day/index; use one addressing mode",
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *CuratorError {
	return &CuratorError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidDay creates a 400 error for a day number outside 1..4.
func NewInvalidDay(day int) *CuratorError {
	return &CuratorError{
		Code:    ErrInvalidDay,
		Status:  400,
		Message: fmt.Sprintf("invalid day %d (must be 1-4)", day),
		Details: map[string]any{"day": day},
	}
}

// NewInvalidIndex creates a 400 error for a display index with no story behind it.
func NewInvalidIndex(day, index, total int) *CuratorError {
	return &CuratorError{
		Code:    ErrInvalidIndex,
		Status:  400,
		Message: fmt.Sprintf("invalid index %d for day %d (valid: 1-%d)", index, day, total),
		Details: map[string]any{"day": day, "index": index, "total": total},
	}
}

// NewNotFound creates a 404 error for when a story cannot be found.
func NewNotFound(identifier string) *CuratorError {
	return &CuratorError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("story not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFileNotFound creates a 404 error for a missing snapshot or data file.
func NewFileNotFound(path string) *CuratorError {
	return &CuratorError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewConflict creates a 409 error for slot conflicts.
func NewConflict(msg string) *CuratorError {
	return &CuratorError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewValidationFailed creates a 422 error when the edition cannot be saved.
func NewValidationFailed(problems []string) *CuratorError {
	return &CuratorError{
		Code:    ErrValidationFailed,
		Status:  422,
		Message: fmt.Sprintf("edition failed validation: %v", problems),
		Details: map[string]any{"problems": problems},
	}
}

// NewCollaboratorFailed creates a 502 error when an external collaborator call fails.
func NewCollaboratorFailed(collaborator string, err error) *CuratorError {
	msg := "call failed"
	if err != nil {
		msg = err.Error()
	}
	return &CuratorError{
		Code:    ErrCollaboratorFailed,
		Status:  502,
		Message: fmt.Sprintf("%s: %s", collaborator, msg),
		Details: map[string]any{"collaborator": collaborator},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *CuratorError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &CuratorError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a CuratorError with the given code.
func Is(err error, code ErrorCode) bool {
	var cErr *CuratorError
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}
