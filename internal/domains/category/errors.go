package category

import (
	"errors"
	"net/http"
)

// =====================================================
// ERROR CODES
// =====================================================
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeCircularReference = "CIRCULAR_REF"
	ErrCodeInvalidState      = "INVALID_STATE"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeInternal          = "INTERNAL"
)

// =====================================================
// SENTINEL ERRORS
// =====================================================
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrParentNotFound    = errors.New("parent category not found")
	ErrDuplicateSlug     = errors.New("category slug already exists")
	ErrCircularReference = errors.New("circular reference: category cannot become its own descendant")
	ErrSelfParent        = errors.New("category cannot be its own parent")
	ErrParentInactive    = errors.New("parent category is inactive")
	ErrHasActiveChildren = errors.New("category has active children")
	ErrHasActiveProducts = errors.New("category has active products")
	ErrUpdateConflict    = errors.New("category was modified concurrently")
	ErrCorruptedTree     = errors.New("parent chain revisits a category")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================

// Error is the typed error every service operation returns on failure.
// Code selects the kind, Details carries machine-readable context such
// as the blocking child/product counts on a refused deactivation.
type Error struct {
	Code    string
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// =====================================================
// CONSTRUCTORS (one per kind)
// =====================================================

func NewInvalidInput(message string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: message}
}

func NewNotFound(message string, err error) *Error {
	return &Error{Code: ErrCodeNotFound, Message: message, Err: err}
}

func NewAlreadyExists(message string, err error) *Error {
	return &Error{Code: ErrCodeAlreadyExists, Message: message, Err: err}
}

func NewCircularReference(message string) *Error {
	return &Error{Code: ErrCodeCircularReference, Message: message, Err: ErrCircularReference}
}

func NewInvalidState(message string, err error, details map[string]interface{}) *Error {
	return &Error{Code: ErrCodeInvalidState, Message: message, Details: details, Err: err}
}

func NewConflict(message string) *Error {
	return &Error{Code: ErrCodeConflict, Message: message, Err: ErrUpdateConflict}
}

func NewInternal(message string, err error) *Error {
	return &Error{Code: ErrCodeInternal, Message: message, Err: err}
}

// =====================================================
// PREDICATES
// =====================================================

func codeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return codeOf(err) == ErrCodeNotFound
}

func IsAlreadyExists(err error) bool {
	return codeOf(err) == ErrCodeAlreadyExists
}

func IsCircularReference(err error) bool {
	return codeOf(err) == ErrCodeCircularReference
}

func IsInvalidState(err error) bool {
	return codeOf(err) == ErrCodeInvalidState
}

func IsConflict(err error) bool {
	return codeOf(err) == ErrCodeConflict
}

func IsInvalidInput(err error) bool {
	return codeOf(err) == ErrCodeInvalidInput
}

// AsError extracts the typed error, wrapping unknown errors as Internal
// so handlers always have a code and message to render.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Code: ErrCodeInternal, Message: "internal error", Err: err}
}

// GetHTTPStatusCode maps a service error to the status the API renders.
// Every kind except Internal maps to a distinct non-500 status.
func GetHTTPStatusCode(err error) int {
	switch codeOf(err) {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists:
		return http.StatusConflict
	case ErrCodeCircularReference, ErrCodeInvalidState:
		return http.StatusUnprocessableEntity
	case ErrCodeConflict:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
