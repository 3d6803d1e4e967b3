package session

import (
	"errors"

	"github.com/openhouse-app/openhouse/account"
	"github.com/openhouse-app/openhouse/auth"
)

// errorMessage flattens a gateway or repository failure into the single
// user-displayable string carried on the snapshot. No structured error
// survives past the session store boundary.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return "account not found"
	case errors.Is(err, account.ErrDuplicateEmail):
		return "email already registered"
	case errors.Is(err, auth.ErrInvalidEmail):
		return "invalid email address"
	case errors.Is(err, auth.ErrInvalidPhone):
		return "invalid phone number"
	case errors.Is(err, auth.ErrInvalidCredential):
		return "invalid password"
	case errors.Is(err, auth.ErrInvalidAccountType):
		return "invalid account type"
	case errors.Is(err, ErrNoActiveSession):
		return "no user logged in"
	default:
		return err.Error()
	}
}
