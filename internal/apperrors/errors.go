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

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrAlreadyVoided indicates an attempt to void a transaction that is not in
// the ACTIVE state. Voiding is a one-shot operation; the stock reversal must
// never be applied twice.
var ErrAlreadyVoided = fmt.Errorf("%w: transaction is not active", ErrConflict)

// InsufficientStockError is returned when a sale line requests more units than
// the product currently has, or when voiding a purchase would drive stock
// negative. It carries enough detail for user-facing messaging.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// AppError wraps an underlying error with a status code and a message suitable
// for the transport layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
