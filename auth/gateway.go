// Package auth is the validation and business-rule layer between the
// session store and the account repository. It is stateless: every call
// translates directly into repository operations.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openhouse-app/openhouse/account"
)

// Registration is the input to Register. The Agent details are consulted
// only when Type is account.TypeAgent.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Type      account.Type
	Agent     account.AgentDetails
}

// Gateway validates input shape and applies the registration and login
// rules on top of the account repository.
type Gateway struct {
	accounts *account.Repository
}

// NewGateway creates a Gateway over the given repository.
func NewGateway(accounts *account.Repository) *Gateway {
	return &Gateway{accounts: accounts}
}

// NewAccountID generates a collision-resistant account ID scoped by variant.
func NewAccountID(t account.Type) string {
	return fmt.Sprintf("%s_%s", t, uuid.NewString())
}

// Login authenticates an email against the given variant's collection only;
// a seeker email presented on an agent login fails with account.ErrNotFound.
//
// No real credential verification is performed: any non-empty password
// matching an existing email succeeds. This is a stand-in for a future
// remote credential check, not a security feature.
func (g *Gateway) Login(ctx context.Context, email, password string, t account.Type) (*account.Account, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%q: %w", t, ErrInvalidAccountType)
	}
	a, err := g.accounts.FindByEmail(ctx, email, t)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrInvalidCredential
	}
	return a, nil
}

// Register validates the registration, builds a new defaulted account of
// the requested variant, and persists it. The email must be unused across
// both collections.
func (g *Gateway) Register(ctx context.Context, reg Registration) (*account.Account, error) {
	if !reg.Type.Valid() {
		return nil, fmt.Errorf("%q: %w", reg.Type, ErrInvalidAccountType)
	}
	if !ValidEmail(reg.Email) {
		return nil, ErrInvalidEmail
	}
	if !ValidPhone(reg.Phone) {
		return nil, ErrInvalidPhone
	}
	exists, err := g.accounts.EmailExists(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", reg.Email, account.ErrDuplicateEmail)
	}

	now := time.Now()
	id := NewAccountID(reg.Type)
	var a *account.Account
	if reg.Type == account.TypeAgent {
		a = account.NewAgent(id, reg.Email, reg.FirstName, reg.LastName, reg.Phone, reg.Agent, now)
	} else {
		a = account.NewSeeker(id, reg.Email, reg.FirstName, reg.LastName, reg.Phone, now)
	}
	if err := g.accounts.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateProfile merges the patch over the stored account with the given ID.
// Fails with account.ErrNotFound if the ID is unknown.
func (g *Gateway) UpdateProfile(ctx context.Context, id string, patch account.Patch) (*account.Account, error) {
	return g.accounts.Update(ctx, id, patch)
}
