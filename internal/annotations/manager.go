package annotations

import (
	"context"
	"sync"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
)

// Manager owns one Store per open lesson session.
type Manager struct {
	mu      sync.Mutex
	log     *logger.Logger
	persist Persistence
	stores  map[string]*Store
}

func NewManager(log *logger.Logger, persist Persistence) *Manager {
	return &Manager{
		log:     log.With("service", "AnnotationManager"),
		persist: persist,
		stores:  map[string]*Store{},
	}
}

// ForSession returns the session's store, creating it (and loading any
// persisted snapshot) on first use.
func (m *Manager) ForSession(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	if s, ok := m.stores[sessionID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s, err := NewStore(ctx, m.log, m.persist, sessionID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[sessionID]; ok {
		return existing, nil
	}
	m.stores[sessionID] = s
	return s, nil
}

// Drop clears the session's storage and forgets the store. Called on
// lesson-session exit regardless of whether the user saved.
func (m *Manager) Drop(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	s, ok := m.stores[sessionID]
	delete(m.stores, sessionID)
	m.mu.Unlock()

	if !ok {
		var err error
		s, err = NewStore(ctx, m.log, m.persist, sessionID)
		if err != nil {
			return err
		}
	}
	return s.ClearStorage(ctx)
}
