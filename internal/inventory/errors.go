package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrRecipeNotFound is returned when a recipe id resolves to nothing
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrItemNotFound is returned when an item id resolves to nothing
	ErrItemNotFound = errors.New("item not found")
	// ErrSupplierNotFound is returned when a supplier id resolves to nothing
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrUnitNotFound is returned when a unit id resolves to nothing
	ErrUnitNotFound = errors.New("unit not found")
	// ErrInsufficientStock is returned when a checked decrement would drive
	// a stock quantity below zero
	ErrInsufficientStock = errors.New("insufficient stock")
)

// NoConversionError reports a missing conversion path between two units.
// Stock and costing paths treat this as a hard error; display paths fall
// back to the unconverted quantity instead.
type NoConversionError struct {
	FromUnitID string
	ToUnitID   string
}

func (e *NoConversionError) Error() string {
	return fmt.Sprintf("no conversion path from unit %s to unit %s", e.FromUnitID, e.ToUnitID)
}

// ValidationError reports bad input rejected before any mutation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
