package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/openhouse-app/openhouse/account"
	"github.com/openhouse-app/openhouse/auth"
	"github.com/openhouse-app/openhouse/session"
	bboltstorage "github.com/openhouse-app/openhouse/storage/bbolt"
)

// env is the wired-up session core a command runs against, standing in for
// the mobile app shell: the watchdog sees a foreground transition on open
// and a background transition on close, and commands ping it on use.
type env struct {
	store    *session.Store
	watchdog *session.Watchdog
	closeFn  func()
}

func (e *env) close() {
	e.closeFn()
}

func openEnv() (*env, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	st, err := bboltstorage.NewStoreFromFile(filepath.Join(dataDir, "openhouse.db"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	repo := account.NewRepository(st)
	gateway := auth.NewGateway(repo)
	store := session.NewStore(gateway, st,
		session.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))),
		session.WithNotifier(session.NotifierFunc(func(message string) {
			fmt.Fprintln(os.Stderr, message)
		})),
	)
	watchdog := session.NewWatchdog(store)
	watchdog.Foreground()

	return &env{
		store:    store,
		watchdog: watchdog,
		closeFn: func() {
			watchdog.Background()
			watchdog.Close()
			st.Close()
		},
	}, nil
}

// readPassword prompts for a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
