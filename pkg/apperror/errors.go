package apperror

import (
	"errors"
	"net/http"
)

// Kind is a machine-readable error classification. Handlers map kinds to HTTP
// status codes; services compare kinds instead of matching message strings.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindInsufficientStock  Kind = "insufficient_stock"
	KindInsufficientPoints Kind = "insufficient_points"
	KindInsufficientCredit Kind = "insufficient_credit"
	KindInconsistentState  Kind = "inconsistent_state"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindInternal           Kind = "internal"
)

// AppError represents an application error with a taxonomy kind and HTTP status
type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound     = &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden    = &AppError{Kind: KindForbidden, Code: http.StatusForbidden, Message: "Forbidden"}
	ErrConflict     = &AppError{Kind: KindConflict, Code: http.StatusConflict, Message: "Resource already exists"}
)

// New creates a new application error with an explicit kind and status code
func New(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error from field errors
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewBadRequestError creates a validation error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error for a named resource
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewInsufficientStock signals a stock adjustment that would drive quantity negative
func NewInsufficientStock(message string) *AppError {
	return &AppError{
		Kind:    KindInsufficientStock,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewInsufficientPoints signals a loyalty redemption exceeding the card balance
func NewInsufficientPoints(message string) *AppError {
	return &AppError{
		Kind:    KindInsufficientPoints,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewInsufficientCredit signals a store-credit issuance exceeding available credit
func NewInsufficientCredit(message string) *AppError {
	return &AppError{
		Kind:    KindInsufficientCredit,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewInconsistentState signals a stored record violating a bookkeeping invariant
func NewInconsistentState(message string) *AppError {
	return &AppError{
		Kind:    KindInconsistentState,
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
