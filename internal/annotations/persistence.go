package annotations

import (
	"context"
	"sync"
)

// Persistence is the session-scoped key/value backing for annotation
// snapshots. Implementations: the redis client in
// internal/clients/redis, and the in-memory variant below for tests and
// redis-less development.
type Persistence interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type memoryPersistence struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryPersistence returns a process-local Persistence.
func NewMemoryPersistence() Persistence {
	return &memoryPersistence{data: map[string][]byte{}}
}

func (m *memoryPersistence) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryPersistence) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data[key]...), nil
}

func (m *memoryPersistence) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
