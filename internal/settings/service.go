// Package settings exposes the persisted notification preferences and lets
// other components react when a preference flips.
package settings

import (
	"errors"
	"sync"

	"github.com/smartshelf/smartshelf/internal/models"
	"github.com/smartshelf/smartshelf/internal/storage"
)

// Listener observes a settings change. It runs synchronously inside Update,
// after the new values are persisted.
type Listener func(old, updated models.Settings)

type Service struct {
	store storage.Provider

	mu        sync.Mutex
	listeners []Listener
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store}
}

// Get returns the stored preferences, falling back to defaults for a store
// that has never been written.
func (s *Service) Get() (models.Settings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	return settings, nil
}

// Update persists the new preferences and, if anything changed, notifies
// subscribers with the before and after values.
func (s *Service) Update(updated models.Settings) error {
	old, err := s.Get()
	if err != nil {
		return err
	}

	if err := s.store.SaveSettings(updated); err != nil {
		return err
	}

	if old == updated {
		return nil
	}

	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(old, updated)
	}
	return nil
}

// Subscribe registers a listener for future Update calls.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
