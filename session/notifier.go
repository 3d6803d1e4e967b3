package session

// sessionExpiredMessage is the user-visible notice shown when the watchdog
// expires an idle session.
const sessionExpiredMessage = "You have been logged out due to inactivity. Please log in again."

// Notifier receives user-visible session notices. The UI layer supplies an
// implementation that renders them (alert dialog, toast, terminal line).
type Notifier interface {
	// SessionExpired is called exactly once per watchdog-forced logout.
	SessionExpired(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

// SessionExpired implements Notifier.
func (f NotifierFunc) SessionExpired(message string) {
	if f == nil {
		return
	}
	f(message)
}

type noopNotifier struct{}

func (noopNotifier) SessionExpired(string) {}

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
