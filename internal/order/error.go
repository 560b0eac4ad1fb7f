package order

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidOrderID  = errors.New("invalid order id")
	ErrOrderNotFound   = errors.New("order not found")
)
