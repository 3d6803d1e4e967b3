package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-app/openhouse/account"
	"github.com/openhouse-app/openhouse/auth"
	"github.com/openhouse-app/openhouse/storage"
	"github.com/openhouse-app/openhouse/storage/memory"
)

// failingStore wraps a storage.Store and fails reads or writes on demand.
type failingStore struct {
	storage.Store
	mu       sync.Mutex
	failPuts bool
	failGets bool
}

func (f *failingStore) setFailPuts(fail bool) {
	f.mu.Lock()
	f.failPuts = fail
	f.mu.Unlock()
}

func (f *failingStore) Put(key string, value []byte) error {
	f.mu.Lock()
	fail := f.failPuts
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.Store.Put(key, value)
}

func (f *failingStore) Get(key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGets
	f.mu.Unlock()
	if fail {
		return nil, errors.New("read error")
	}
	return f.Store.Get(key)
}

// recordingNotifier captures session-expired notices.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) SessionExpired(message string) {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore wires a session store, its gateway, and shared storage. The
// account collections and the session snapshot share one store with
// disjoint key namespaces, as in production.
func newTestStore(t *testing.T, opts ...Option) (*Store, storage.Store) {
	t.Helper()
	st := memory.NewStore()
	return newTestStoreOver(t, st, opts...), st
}

func newTestStoreOver(t *testing.T, st storage.Store, opts ...Option) *Store {
	t.Helper()
	gateway := auth.NewGateway(account.NewRepository(st))
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewStore(gateway, st, opts...)
}

func seekerRegistration(email string) auth.Registration {
	return auth.Registration{
		Email:     email,
		Password:  "hunter2hunter2",
		FirstName: "Ada",
		LastName:  "Seeker",
		Phone:     "0123456789",
		Type:      account.TypeSeeker,
	}
}

func TestStore_InitialStateIsAnonymous(t *testing.T) {
	s, _ := newTestStore(t)
	snap := s.Snapshot()
	assert.Nil(t, snap.Account)
	assert.False(t, snap.Authenticated)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
}

func TestStore_RegisterImpliesLogin(t *testing.T) {
	ctx := context.Background()
	s, st := newTestStore(t)

	ok := s.Register(ctx, seekerRegistration("ada@example.com"))
	require.True(t, ok)

	snap := s.Snapshot()
	require.NotNil(t, snap.Account)
	assert.True(t, snap.Authenticated)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	assert.Equal(t, account.TypeSeeker, snap.Account.Type)

	token, err := st.Get("session/token")
	require.NoError(t, err)
	assert.Equal(t, "seeker_token_"+snap.Account.ID, string(token))
}

func TestStore_RegisterFailureLeavesAuthStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))
	before := s.Snapshot()

	ok := s.Register(ctx, seekerRegistration("ada@example.com"))
	assert.False(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, "email already registered", snap.Err)
	assert.True(t, snap.Authenticated, "failed registration must not log anyone out")
	require.NotNil(t, snap.Account)
	assert.Equal(t, before.Account.ID, snap.Account.ID)
}

func TestStore_Login(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))
	s.Logout()

	t.Run("Success", func(t *testing.T) {
		ok := s.Login(ctx, "ada@example.com", "any-password", account.TypeSeeker)
		require.True(t, ok)
		snap := s.Snapshot()
		assert.True(t, snap.Authenticated)
		assert.Equal(t, "ada@example.com", snap.Account.Email)
		assert.Empty(t, snap.Err)
		s.Logout()
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		ok := s.Login(ctx, "nobody@example.com", "pw", account.TypeSeeker)
		assert.False(t, ok)
		snap := s.Snapshot()
		assert.False(t, snap.Authenticated)
		assert.Nil(t, snap.Account)
		assert.Equal(t, "account not found", snap.Err)
	})

	t.Run("WrongVariant", func(t *testing.T) {
		ok := s.Login(ctx, "ada@example.com", "pw", account.TypeAgent)
		assert.False(t, ok)
		assert.Equal(t, "account not found", s.Snapshot().Err)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		ok := s.Login(ctx, "ada@example.com", "", account.TypeSeeker)
		assert.False(t, ok)
		assert.Equal(t, "invalid password", s.Snapshot().Err)
	})
}

func TestStore_ActionClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))
	s.Logout()

	require.False(t, s.Login(ctx, "nobody@example.com", "pw", account.TypeSeeker))
	require.NotEmpty(t, s.Snapshot().Err)

	require.True(t, s.Login(ctx, "ada@example.com", "pw", account.TypeSeeker))
	assert.Empty(t, s.Snapshot().Err, "a new action clears the previous error")
}

func TestStore_ClearError(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.False(t, s.Login(ctx, "nobody@example.com", "pw", account.TypeSeeker))
	require.NotEmpty(t, s.Snapshot().Err)

	s.ClearError()
	snap := s.Snapshot()
	assert.Empty(t, snap.Err)
	assert.False(t, snap.Authenticated, "ClearError touches nothing but the error")
}

func TestStore_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	t.Run("NoActiveSession", func(t *testing.T) {
		ok := s.UpdateProfile(ctx, account.Patch{})
		assert.False(t, ok)
		assert.Equal(t, "no user logged in", s.Snapshot().Err)
	})

	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))
	before := s.Snapshot()

	t.Run("ReplacesAccount", func(t *testing.T) {
		first := "Grace"
		ok := s.UpdateProfile(ctx, account.Patch{FirstName: &first})
		require.True(t, ok)
		snap := s.Snapshot()
		assert.Equal(t, "Grace", snap.Account.FirstName)
		assert.Equal(t, before.Account.ID, snap.Account.ID)
		assert.True(t, snap.Account.UpdatedAt.After(before.Account.UpdatedAt))
		assert.True(t, snap.Authenticated)
	})
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	s, st := newTestStore(t, WithNotifier(notifier))
	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))

	var transitions int
	cancel := s.Subscribe(func(Snapshot) { transitions++ })
	defer cancel()

	s.Logout()
	snap := s.Snapshot()
	assert.Nil(t, snap.Account)
	assert.False(t, snap.Authenticated)
	assert.Empty(t, snap.Err)
	assert.Equal(t, 1, transitions)
	_, err := st.Get("session/token")
	assert.ErrorIs(t, err, storage.ErrNotFound, "logout clears the token marker")

	// Logging out again is a no-op: no state change, no notifications.
	s.Logout()
	assert.Equal(t, 1, transitions)
	assert.Equal(t, 0, notifier.count(), "user-initiated logout never notifies")
}

func TestStore_ExpiredLogoutNotifies(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	s, _ := newTestStore(t, WithNotifier(notifier))
	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))

	s.logout(true)
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, sessionExpiredMessage, notifier.messages[0])

	// Already anonymous: no duplicate notice.
	s.logout(true)
	assert.Equal(t, 1, notifier.count())
}

func TestStore_RehydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	s := newTestStoreOver(t, st)
	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))
	before := s.Snapshot()

	// "Restart the process": a fresh store over the same durable storage.
	restarted := newTestStoreOver(t, st)
	after := restarted.Snapshot()

	wantJSON, err := json.Marshal(before)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(after)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON), "rehydrated snapshot must be field-for-field equal")
}

func TestStore_RehydrateMissingBlob(t *testing.T) {
	s := newTestStoreOver(t, memory.NewStore())
	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestStore_RehydrateCorruptBlob(t *testing.T) {
	st := memory.NewStore()
	require.NoError(t, st.Put("session/current", []byte("{definitely not json")))
	s := newTestStoreOver(t, st)
	assert.Equal(t, Snapshot{}, s.Snapshot(), "corrupt snapshot falls back to anonymous")
}

func TestStore_RehydrateEnforcesAuthInvariant(t *testing.T) {
	st := memory.NewStore()
	// A snapshot claiming authentication with no account is inconsistent;
	// rehydration must normalize it rather than trust it.
	require.NoError(t, st.Put("session/current", []byte(`{"is_authenticated":true,"is_loading":true}`)))
	s := newTestStoreOver(t, st)
	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.False(t, snap.Loading)
}

func TestStore_RehydrateFailingStorage(t *testing.T) {
	// A store whose reads blow up must still start, anonymous.
	st := &failingStore{Store: memory.NewStore(), failGets: true}
	s := newTestStoreOver(t, st)
	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestStore_WriteFailureIsSurfaced(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Store: memory.NewStore()}
	s := newTestStoreOver(t, fs)
	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))
	s.Logout()

	fs.setFailPuts(true)
	ok := s.Login(ctx, "ada@example.com", "pw", account.TypeSeeker)
	assert.True(t, ok, "the auth outcome itself succeeded")

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated, "in-memory state reflects the intended outcome")
	require.NotNil(t, snap.Account)
	assert.Contains(t, snap.Err, "storage failure", "the write failure is surfaced, not swallowed")
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	var got []Snapshot
	cancel := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	require.True(t, s.Register(ctx, seekerRegistration("ada@example.com")))
	// Two transitions per action: loading, then settled.
	require.Len(t, got, 2)
	assert.True(t, got[0].Loading)
	assert.True(t, got[1].Authenticated)

	cancel()
	s.Logout()
	assert.Len(t, got, 2, "cancelled subscribers see no further transitions")
}
