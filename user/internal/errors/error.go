package errors

import "errors"

var (
	ErrWeakPassword      = errors.New("password should be at least 6 characters")
	ErrEmailExist        = errors.New("email already in use")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUserNotFound      = errors.New("user not found")
	ErrAddressNotFound   = errors.New("address not found")
)
