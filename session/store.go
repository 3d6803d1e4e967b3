// Package session holds the single authoritative record of who is logged
// in on this device, and the idle-timeout watchdog that force-expires it.
// The store is the only component the UI layer reads or writes; it drives
// the auth gateway underneath and writes its snapshot through to durable
// storage after every transition.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/openhouse-app/openhouse/account"
	"github.com/openhouse-app/openhouse/auth"
	"github.com/openhouse-app/openhouse/storage"
)

const (
	snapshotKey = "session/current"
	tokenKey    = "session/token"
)

// ErrNoActiveSession indicates a profile update was attempted with nobody
// logged in.
var ErrNoActiveSession = errors.New("no user logged in")

// Snapshot is the full session state at a point in time. Transitions always
// replace the whole snapshot; it is never partially updated. Invariant:
// Authenticated == (Account != nil).
type Snapshot struct {
	Account       *account.Account `json:"account,omitempty"`
	Authenticated bool             `json:"is_authenticated"`
	Loading       bool             `json:"is_loading"`
	Err           string           `json:"error,omitempty"`
}

// Store is the process-wide session store. Construct one with NewStore and
// pass it by reference to whatever consumes it; there is no package-level
// instance.
type Store struct {
	gateway  *auth.Gateway
	storage  storage.Store
	log      *slog.Logger
	notifier Notifier

	mu    sync.RWMutex
	state Snapshot

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the structured logger. If not set, a default JSON logger
// writing to stderr is used.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithNotifier sets the hook for user-visible session-expired notices.
// If not set, notices are dropped.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// NewStore creates a session store over the given gateway and durable
// storage, rehydrating any previously persisted snapshot. A missing or
// corrupt snapshot falls back to the anonymous initial state; rehydration
// never fails startup.
func NewStore(gateway *auth.Gateway, st storage.Store, opts ...Option) *Store {
	s := &Store{
		gateway: gateway,
		storage: st,
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	s.notifier = normalizeNotifier(s.notifier)
	s.state = s.rehydrate()
	return s
}

func (s *Store) rehydrate() Snapshot {
	data, err := s.storage.Get(snapshotKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("session rehydration failed, starting anonymous", "err", err)
		}
		return Snapshot{}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("corrupt session snapshot, starting anonymous", "err", err)
		return Snapshot{}
	}
	// A stale snapshot cannot resurrect an inconsistent or in-flight state.
	snap.Authenticated = snap.Account != nil
	snap.Loading = false
	return snap
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state
	snap.Account = snap.Account.Clone()
	return snap
}

// Authenticated reports whether an account is currently logged in.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated
}

// Account returns a copy of the logged-in account, or nil.
func (s *Store) Account() *account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Account.Clone()
}

// Subscribe registers fn to be called with a copy of the snapshot after
// every transition. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		snap := snap
		snap.Account = snap.Account.Clone()
		fn(snap)
	}
}

// transition writes the snapshot through to durable storage, commits it as
// the in-memory state, and publishes it to subscribers. On a storage write
// failure the in-memory state still reflects the intended outcome; the
// failure is logged and surfaced in the snapshot's Err field.
func (s *Store) transition(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err == nil {
		err = s.storage.Put(snapshotKey, data)
	}
	if err != nil {
		s.log.Error("persisting session snapshot", "err", err)
		if snap.Err == "" {
			snap.Err = "storage failure: " + err.Error()
		}
	}
	s.mu.Lock()
	s.state = snap
	s.mu.Unlock()
	s.publish(snap)
}

// Login authenticates against the given variant's collection. Returns true
// on success, after which the account is the active session. On failure the
// account and authentication flag are unchanged and Err carries the reason.
func (s *Store) Login(ctx context.Context, email, password string, t account.Type) bool {
	cur := s.Snapshot()
	s.transition(Snapshot{Account: cur.Account, Authenticated: cur.Authenticated, Loading: true})

	a, err := s.gateway.Login(ctx, email, password, t)
	if err != nil {
		s.transition(Snapshot{Account: cur.Account, Authenticated: cur.Authenticated, Err: errorMessage(err)})
		return false
	}
	s.transition(Snapshot{Account: a, Authenticated: true})
	s.storeTokenMarker(a)
	return true
}

// Register creates a new account and, on success, makes it the active
// session immediately (registration implies login).
func (s *Store) Register(ctx context.Context, reg auth.Registration) bool {
	cur := s.Snapshot()
	s.transition(Snapshot{Account: cur.Account, Authenticated: cur.Authenticated, Loading: true})

	a, err := s.gateway.Register(ctx, reg)
	if err != nil {
		s.transition(Snapshot{Account: cur.Account, Authenticated: cur.Authenticated, Err: errorMessage(err)})
		return false
	}
	s.transition(Snapshot{Account: a, Authenticated: true})
	s.storeTokenMarker(a)
	return true
}

// UpdateProfile merges the patch over the logged-in account. Fails fast if
// nobody is logged in.
func (s *Store) UpdateProfile(ctx context.Context, patch account.Patch) bool {
	cur := s.Snapshot()
	if cur.Account == nil {
		s.transition(Snapshot{Err: errorMessage(ErrNoActiveSession)})
		return false
	}
	s.transition(Snapshot{Account: cur.Account, Authenticated: true, Loading: true})

	a, err := s.gateway.UpdateProfile(ctx, cur.Account.ID, patch)
	if err != nil {
		s.transition(Snapshot{Account: cur.Account, Authenticated: true, Err: errorMessage(err)})
		return false
	}
	s.transition(Snapshot{Account: a, Authenticated: true})
	return true
}

// Logout clears the session. Calling it when already unauthenticated is a
// no-op: no error, no state change, no notifications.
func (s *Store) Logout() {
	s.logout(false)
}

func (s *Store) logout(notify bool) {
	s.mu.RLock()
	authed := s.state.Authenticated
	s.mu.RUnlock()
	if !authed {
		return
	}
	s.transition(Snapshot{})
	if err := s.storage.Delete(tokenKey); err != nil {
		s.log.Warn("clearing auth token marker", "err", err)
	}
	if notify {
		s.notifier.SessionExpired(sessionExpiredMessage)
	}
}

// ClearError clears the error field without touching anything else.
func (s *Store) ClearError() {
	cur := s.Snapshot()
	if cur.Err == "" {
		return
	}
	cur.Err = ""
	s.transition(cur)
}

// storeTokenMarker writes the ephemeral token marker for the logged-in
// account. It stands in for a future remote API token and is cleared on
// logout; a write failure here is logged, not surfaced.
func (s *Store) storeTokenMarker(a *account.Account) {
	token := string(a.Type) + "_token_" + a.ID
	if err := s.storage.Put(tokenKey, []byte(token)); err != nil {
		s.log.Warn("storing auth token marker", "err", err)
	}
}
