package errors

import "errors"

var (
	ErrEmptyAuth       = errors.New("missing authorization")
	ErrEmptySubject    = errors.New("missing subject")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenRevoked    = errors.New("token has been revoked")
	ErrFailedHashToken = errors.New("failed hashing token")
	ErrUnauthenticated = errors.New("user is not signed in")
	ErrInvalidDocument = errors.New("document does not match schema")
	ErrUpstreamFailure = errors.New("upstream service returned an error")
)
