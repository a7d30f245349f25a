package render

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns encoded page images by handle. It is the single release
// point for image memory: cache eviction, hi-res swaps and pipeline
// teardown all free through here, so a leaked handle is observable as a
// non-zero Len.
type Registry struct {
	mu     sync.Mutex
	images map[uuid.UUID][]byte
}

func NewRegistry() *Registry {
	return &Registry{images: map[uuid.UUID][]byte{}}
}

// Put stores encoded image bytes and returns their handle.
func (r *Registry) Put(data []byte) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	r.images[id] = data
	r.mu.Unlock()
	return id
}

// Get returns the image bytes for a live handle.
func (r *Registry) Get(id uuid.UUID) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.images[id]
	return data, ok
}

// Release frees one handle. Releasing an unknown handle is a no-op.
func (r *Registry) Release(id uuid.UUID) {
	r.mu.Lock()
	delete(r.images, id)
	r.mu.Unlock()
}

// Len is the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images)
}
