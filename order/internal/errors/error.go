package errors

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("wallet balance is not enough to pay the order")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrUnknownProduct      = errors.New("order contains a product that is not in the catalog")
)
