// Package session manages the stored auth session. Authentication itself
// lives in the backend; smartshelf only holds the session token in the
// system keyring and tears down notification state when the user signs out.
package session

import (
	"context"
	"errors"

	"github.com/smartshelf/smartshelf/internal/keyring"
	"github.com/smartshelf/smartshelf/internal/logger"
	"github.com/smartshelf/smartshelf/internal/scheduler"
)

type Manager struct {
	scheduler *scheduler.Scheduler
}

func NewManager(sched *scheduler.Scheduler) *Manager {
	return &Manager{scheduler: sched}
}

// SignedIn reports whether a session token is stored.
func (m *Manager) SignedIn() (bool, error) {
	_, err := keyring.GetSessionToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SignIn stores the session token handed back by the auth backend.
func (m *Manager) SignIn(token string) error {
	return keyring.SetSessionToken(token)
}

// SignOut cancels every scheduled notification and then clears the stored
// token. Notifications must not outlive the session they belong to, so the
// cancel runs first; if it fails the sign-out still completes.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.scheduler.CancelAll(ctx); err != nil {
		logger.Warn("Failed to cancel notifications during sign-out", "error", err)
	}

	if err := keyring.DeleteSessionToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
