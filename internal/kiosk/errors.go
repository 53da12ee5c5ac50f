package kiosk

import "fmt"

// ValidationError marks malformed or contradictory input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a missing referenced entity.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// InsufficientStockError aborts an order when a product cannot cover the
// requested quantity. ComboName is set when the shortfall was hit while
// checking a combo meal constituent.
type InsufficientStockError struct {
	ProductName string
	ComboName   string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.ComboName != "" {
		return fmt.Sprintf("Insufficient stock for product %s in combo meal %s. Available: %d",
			e.ProductName, e.ComboName, e.Available)
	}
	return fmt.Sprintf("Insufficient stock for product %s. Available: %d", e.ProductName, e.Available)
}
