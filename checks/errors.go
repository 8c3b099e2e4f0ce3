package checks

import "errors"

var (
	// ErrTokenMalformed indicates the token could not be parsed as a JWT.
	ErrTokenMalformed = errors.New("checks: token is malformed")

	// ErrTokenSignature indicates signature verification failed.
	ErrTokenSignature = errors.New("checks: token signature is invalid")

	// ErrNoExpiry indicates the token has no exp claim.
	ErrNoExpiry = errors.New("checks: token has no expiration")
)
