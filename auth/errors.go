package auth

import "errors"

var (
	// ErrInvalidEmail indicates the email does not look like a mailbox address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidPhone indicates the phone number failed format validation.
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrInvalidCredential indicates the supplied password was rejected.
	ErrInvalidCredential = errors.New("invalid password")
	// ErrInvalidAccountType indicates an unknown account variant tag.
	ErrInvalidAccountType = errors.New("invalid account type")
)
