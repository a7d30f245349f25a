package render

import (
	"strings"
	"sync"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// DefaultCacheCapacity bounds how many rendered exercises stay resident.
const DefaultCacheCapacity = 30

// Entry is one fully rendered exercise.
type Entry struct {
	Pages  []types.RenderedPage
	Spaces []coords.PageSpace
	Scale  float64

	// rev increments on every hi-res swap so a stale zoom result can
	// detect it lost the race and release its own handles instead.
	rev int

	// doc holds the stamped page bytes so zoom re-renders skip the
	// extract-and-stamp step.
	doc []byte
}

// Cache keeps rendered exercises keyed by source path, evicting the
// oldest inserted entry once capacity is reached. Re-rendering an
// existing key does not refresh its insertion slot.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*Entry
	order    []string
	onEvict  func(Entry)
}

// NewCache builds a cache that calls onEvict for every entry it drops.
func NewCache(capacity int, onEvict func(Entry)) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  map[string]*Entry{},
		onEvict:  onEvict,
	}
}

// Get returns a copy of the entry for key, if present.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Put inserts or replaces the entry for key. Replacing an existing key
// hands the old entry to onEvict; inserting past capacity evicts the
// oldest inserted key first.
func (c *Cache) Put(key string, e Entry) {
	c.mu.Lock()
	evicted := make([]Entry, 0, 2)
	if old, ok := c.entries[key]; ok {
		e.rev = old.rev
		evicted = append(evicted, *old)
		c.entries[key] = &e
	} else {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			if old, ok := c.entries[oldest]; ok {
				evicted = append(evicted, *old)
				delete(c.entries, oldest)
			}
		}
		c.entries[key] = &e
		c.order = append(c.order, key)
	}
	c.mu.Unlock()
	if c.onEvict != nil {
		for _, old := range evicted {
			c.onEvict(old)
		}
	}
}

// Swap replaces the pages of key with hi-res replacements, but only if
// the entry's revision still matches expectRev. It returns the replaced
// pages and whether the swap happened; on success the entry's revision
// advances.
func (c *Cache) Swap(key string, expectRev int, pages []types.RenderedPage, scale float64) ([]types.RenderedPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.rev != expectRev {
		return nil, false
	}
	old := e.Pages
	e.Pages = pages
	e.Scale = scale
	e.rev++
	return old, true
}

// Remove drops key, handing its entry to onEvict.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
		for i, k := range c.order {
			if k == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	c.mu.Unlock()
	if ok && c.onEvict != nil {
		c.onEvict(*e)
	}
}

// RemovePrefix drops every key starting with prefix, handing each
// dropped entry to onEvict.
func (c *Cache) RemovePrefix(prefix string) {
	c.mu.Lock()
	dropped := make([]Entry, 0, 2)
	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			dropped = append(dropped, *e)
			delete(c.entries, key)
		}
	}
	if len(dropped) > 0 {
		kept := c.order[:0]
		for _, k := range c.order {
			if !strings.HasPrefix(k, prefix) {
				kept = append(kept, k)
			}
		}
		c.order = kept
	}
	c.mu.Unlock()
	if c.onEvict != nil {
		for _, e := range dropped {
			c.onEvict(e)
		}
	}
}

// Clear drops everything, handing each entry to onEvict.
func (c *Cache) Clear() {
	c.mu.Lock()
	dropped := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		dropped = append(dropped, *e)
	}
	c.entries = map[string]*Entry{}
	c.order = nil
	c.mu.Unlock()
	if c.onEvict != nil {
		for _, e := range dropped {
			c.onEvict(e)
		}
	}
}

// Len is the number of cached exercises.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
