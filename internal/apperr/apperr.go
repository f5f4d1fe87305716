// Package apperr defines the domain error taxonomy shared by all services.
// Handlers translate these into HTTP status codes; services never reference
// HTTP concepts directly.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError signals malformed or missing required input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that the operation target does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// InsufficientStockError is returned when a shipment would drive a batch's
// available quantity below zero. Available carries the amount still in stock
// so the caller can render an exact user-facing message.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// StorageError wraps an underlying record/object store failure that is not
// otherwise classified. The wrapped error is kept for logs, never for clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// Classification helpers used by the HTTP layer.

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var is *InsufficientStockError
	ok := errors.As(err, &is)
	return is, ok
}
