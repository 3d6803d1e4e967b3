package account

import "errors"

var (
	// ErrNotFound indicates no account matched the given email or ID.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail indicates the email is already registered on either
	// collection.
	ErrDuplicateEmail = errors.New("email already registered")
)
