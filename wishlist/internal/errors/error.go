package errors

import "errors"

var ErrMergeFailed = errors.New("local wishlist could not be merged, it was kept for the next attempt")
