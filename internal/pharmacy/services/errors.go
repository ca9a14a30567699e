package services

import (
	"errors"
	"fmt"
)

var (
	ErrStockNotFound = errors.New("stock item not found")
	ErrInvalidStock  = errors.New("invalid stock item")
	ErrInvalidSale   = errors.New("invalid sale")
)

// InsufficientStockError reports the line that could not be covered by stock.
type InsufficientStockError struct {
	ItemID    int64
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (id %d): requested %d, available %d",
		e.Name, e.ItemID, e.Requested, e.Available)
}

// notFound wraps ErrStockNotFound with the id that was looked up.
func notFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrStockNotFound, id)
}
