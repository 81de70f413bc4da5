package errors

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("invalid checkout transition")
)
