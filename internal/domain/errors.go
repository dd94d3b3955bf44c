package domain

import "errors"

// Domain errors surfaced by the stores. Handlers map each one to a
// distinct HTTP status instead of the flat 500-with-message the old
// backend returned.
var (
	ErrVariantNotFound    = errors.New("variant not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidAddress     = errors.New("address not valid for this customer")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderItemNotFound     = errors.New("order item does not belong to this order")
	ErrInvalidReturnQuantity = errors.New("return quantity exceeds ordered quantity")
	ErrReturnWindowClosed    = errors.New("order is outside the return window")
)
