package session

import (
	"sync"
	"time"
)

// DefaultIdleBudget is how long an authenticated session may sit idle
// before the watchdog logs it out.
const DefaultIdleBudget = 10 * time.Minute

// Watchdog enforces the idle budget on an authenticated session. It owns no
// session data; it only observes activity pings and app foreground or
// background transitions, and drives the store's logout when the budget is
// spent. At most one timeout callback is pending at any time.
//
// The watchdog runs only while the session is authenticated: it subscribes
// to the store and starts or cancels its cycle on auth transitions.
type Watchdog struct {
	store  *Store
	budget time.Duration
	now    func() time.Time

	mu           sync.Mutex
	timer        *time.Timer
	lastActivity time.Time
	background   bool

	unsubscribe func()
	closeOnce   sync.Once
}

// WatchdogOption configures the Watchdog.
type WatchdogOption func(*Watchdog)

// WithIdleBudget overrides the idle budget. Intended for tests.
func WithIdleBudget(d time.Duration) WatchdogOption {
	return func(w *Watchdog) {
		w.budget = d
	}
}

// WithClock overrides the time source used to measure elapsed idle time.
// Intended for tests.
func WithClock(now func() time.Time) WatchdogOption {
	return func(w *Watchdog) {
		w.now = now
	}
}

// NewWatchdog creates a watchdog bound to the store and starts it if the
// store is already authenticated (a rehydrated session). Call Close when
// the watchdog is no longer needed.
func NewWatchdog(store *Store, opts ...WatchdogOption) *Watchdog {
	w := &Watchdog{
		store:  store,
		budget: DefaultIdleBudget,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.lastActivity = w.now()
	w.unsubscribe = store.Subscribe(w.onSnapshot)
	if store.Authenticated() {
		w.NotifyActivity()
	}
	return w
}

// Close cancels any pending callback and detaches from the store.
func (w *Watchdog) Close() {
	w.closeOnce.Do(func() {
		w.unsubscribe()
		w.mu.Lock()
		w.cancelLocked()
		w.mu.Unlock()
	})
}

// NotifyActivity records a raw user interaction: it stamps the activity
// clock and, while the app is foregrounded and the session authenticated,
// replaces the pending callback with a fresh one for a full idle budget.
//
// The UI shell must route every raw input event here, regardless of which
// widget consumed it.
func (w *Watchdog) NotifyActivity() {
	authed := w.store.Authenticated()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastActivity = w.now()
	if !authed || w.background {
		return
	}
	w.scheduleLocked(w.budget)
}

// Foreground handles the app returning to the foreground. If the idle
// budget was spent while away (inclusive: elapsed equal to the budget
// counts), an authenticated session is expired immediately with the
// session-expired notice; otherwise the callback is rescheduled for the
// remaining budget.
func (w *Watchdog) Foreground() {
	w.mu.Lock()
	w.background = false
	elapsed := w.now().Sub(w.lastActivity)
	w.mu.Unlock()

	if !w.store.Authenticated() {
		return
	}
	if elapsed >= w.budget {
		w.mu.Lock()
		w.cancelLocked()
		w.mu.Unlock()
		w.store.logout(true)
		return
	}
	w.mu.Lock()
	if !w.background {
		w.scheduleLocked(w.budget - elapsed)
	}
	w.mu.Unlock()
}

// Background handles the app leaving the foreground: the pending callback
// is cancelled so no timer burns while suspended, but the activity clock is
// preserved for the elapsed-time check on the next Foreground.
func (w *Watchdog) Background() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.background = true
	w.cancelLocked()
}

// onSnapshot reacts to store transitions: an authenticated session gets a
// running cycle, an anonymous one must not keep a pending callback.
func (w *Watchdog) onSnapshot(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !snap.Authenticated {
		w.cancelLocked()
		return
	}
	if w.timer == nil && !w.background {
		w.lastActivity = w.now()
		w.scheduleLocked(w.budget)
	}
}

// expire is the scheduled callback. It logs the session out only if it is
// still authenticated when the budget elapses.
func (w *Watchdog) expire() {
	w.mu.Lock()
	w.timer = nil
	w.mu.Unlock()
	if !w.store.Authenticated() {
		return
	}
	w.store.logout(true)
}

// scheduleLocked replaces the pending callback. Callers hold w.mu.
func (w *Watchdog) scheduleLocked(d time.Duration) {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(d, w.expire)
}

// cancelLocked stops any pending callback. Callers hold w.mu.
func (w *Watchdog) cancelLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
