// Package shared holds the error taxonomy used across the engine.
package shared

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates a reference to an unknown product or bill.
var ErrNotFound = errors.New("not found")

// ValidationError reports bad input shape or range. Always recoverable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError for a field.
func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Shortage names one product whose requested quantity exceeds stock.
type Shortage struct {
	ProductID int64
	Name      string
	Requested int64
	Available int64
}

// InsufficientStockError is a business-rule violation raised when a stock
// movement would drive a product negative. Recoverable; the caller's cart
// is left untouched.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	if len(e.Shortages) == 0 {
		return "insufficient stock"
	}
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (want %d, have %d)", s.Name, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// StorageFault wraps an I/O or durability failure. Fatal to the current
// operation; the transaction that raised it has been rolled back.
type StorageFault struct {
	Op  string
	Err error
}

func (e *StorageFault) Error() string {
	return fmt.Sprintf("storage fault during %s: %v", e.Op, e.Err)
}

func (e *StorageFault) Unwrap() error {
	return e.Err
}

// Storagef wraps err as a StorageFault for operation op.
func Storagef(op string, err error) *StorageFault {
	return &StorageFault{Op: op, Err: err}
}

// IsStorageFault reports whether err is a StorageFault.
func IsStorageFault(err error) bool {
	var sf *StorageFault
	return errors.As(err, &sf)
}
