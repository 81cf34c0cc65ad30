package errors

import "fmt"

// Error codes
const (
	ErrCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeEmptyDeck         = "EMPTY_DECK"
	ErrCodeNoActiveSession   = "NO_ACTIVE_SESSION"
	ErrCodeInvalidNavigation = "INVALID_NAVIGATION"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "EMPTY_DECK")
	Message string // Human-readable error message
	Field   string // Field the error refers to, when it refers to one
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidArgumentError creates a new INVALID_ARGUMENT error
func NewInvalidArgumentError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Field:   field,
		Status:  400,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewEmptyDeckError creates a new EMPTY_DECK error
func NewEmptyDeckError(deckID string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyDeck,
		Message: fmt.Sprintf("deck %s has no cards to study", deckID),
		Status:  422,
	}
}

// NewNoActiveSessionError creates a new NO_ACTIVE_SESSION error
func NewNoActiveSessionError() *AppError {
	return &AppError{
		Code:    ErrCodeNoActiveSession,
		Message: "no active study session",
		Status:  409,
	}
}

// NewInvalidNavigationError creates a new INVALID_NAVIGATION error
func NewInvalidNavigationError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidNavigation,
		Message: reason,
		Status:  422,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Field:   field,
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}
