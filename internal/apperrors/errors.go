package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested listing or company could not be found.
// Wallet lookups never produce it; unseen wallets default to the starting balance.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation on a listing that is not in the required status.
var ErrInvalidState = errors.New("listing is not in the required state")

// ErrForbidden indicates that the actor does not own the resource it is acting on.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInsufficientFunds indicates that a wallet debit would leave a negative balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAlreadySold indicates that a purchase lost the race for a listing to another buyer.
var ErrAlreadySold = errors.New("listing already sold")

// AppError wraps an infrastructure failure together with the HTTP status it maps to.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the stable machine-readable code for a domain error, so clients
// can tell "insufficient balance" apart from "listing no longer available".
func Code(err error) string {
	switch {
	case errors.Is(err, ErrAlreadySold):
		return "ALREADY_SOLD"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrInvalidState):
		return "INVALID_STATE"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	default:
		return "INTERNAL"
	}
}
