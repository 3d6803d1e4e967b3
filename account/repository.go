package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openhouse-app/openhouse/storage"
)

const (
	seekersKey = "accounts/seekers"
	agentsKey  = "accounts/agents"
)

// Repository persists the seeker and agent collections as two JSON blobs in
// a storage.Store. Every mutation is a full read-modify-write of the owning
// collection's blob; there is no optimistic concurrency, so two concurrent
// writers to the same collection race and the later write wins.
type Repository struct {
	store storage.Store
}

// NewRepository creates a Repository over the given store.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

func collectionKey(t Type) string {
	if t == TypeAgent {
		return agentsKey
	}
	return seekersKey
}

// load reads a collection. A missing blob is an empty collection; a read or
// decode failure is a storage failure and propagates.
func (r *Repository) load(t Type) ([]*Account, error) {
	data, err := r.store.Get(collectionKey(t))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s collection: %w", t, err)
	}
	var accounts []*Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decoding %s collection: %w", t, err)
	}
	return accounts, nil
}

func (r *Repository) save(t Type, accounts []*Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encoding %s collection: %w", t, err)
	}
	if err := r.store.Put(collectionKey(t), data); err != nil {
		return fmt.Errorf("writing %s collection: %w", t, err)
	}
	return nil
}

// FindByEmail looks up an account by exact email match within the given
// variant's collection. Returns ErrNotFound if absent.
func (r *Repository) FindByEmail(ctx context.Context, email string, t Type) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	accounts, err := r.load(t)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return a.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", email, ErrNotFound)
}

// FindByEmailAny looks up an account by exact email match across both
// collections, seekers first. Returns ErrNotFound if absent in both.
func (r *Repository) FindByEmailAny(ctx context.Context, email string) (*Account, error) {
	for _, t := range []Type{TypeSeeker, TypeAgent} {
		a, err := r.FindByEmail(ctx, email, t)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", email, ErrNotFound)
}

// EmailExists reports whether the email is registered on either collection.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmailAny(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// FindByID looks up an account by ID across both collections.
func (r *Repository) FindByID(ctx context.Context, id string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, t := range []Type{TypeSeeker, TypeAgent} {
		accounts, err := r.load(t)
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			if a.ID == id {
				return a.Clone(), nil
			}
		}
	}
	return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// Insert appends the account to its variant's collection and persists it.
// Fails with ErrDuplicateEmail if the email exists on either collection.
func (r *Repository) Insert(ctx context.Context, a *Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	exists, err := r.EmailExists(ctx, a.Email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: %w", a.Email, ErrDuplicateEmail)
	}
	accounts, err := r.load(a.Type)
	if err != nil {
		return err
	}
	accounts = append(accounts, a.Clone())
	return r.save(a.Type, accounts)
}

// Update merges patch over the account with the given ID, wherever it
// lives. ID, Type, and CreatedAt keep their original values regardless of
// patch contents, and UpdatedAt is bumped to a strictly later timestamp.
// Returns the merged account, or ErrNotFound if the ID is unknown.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, t := range []Type{TypeSeeker, TypeAgent} {
		accounts, err := r.load(t)
		if err != nil {
			return nil, err
		}
		for i, a := range accounts {
			if a.ID != id {
				continue
			}
			merged := a.Clone()
			patch.apply(merged)
			merged.ID = a.ID
			merged.Type = a.Type
			merged.CreatedAt = a.CreatedAt
			now := time.Now()
			if !now.After(merged.UpdatedAt) {
				now = merged.UpdatedAt.Add(time.Nanosecond)
			}
			merged.UpdatedAt = now
			accounts[i] = merged
			if err := r.save(t, accounts); err != nil {
				return nil, err
			}
			return merged.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
}
