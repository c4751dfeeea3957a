// Package respcache is a TTL cache for parsed response payloads, keyed by
// the fully-qualified request URL. Expiry is checked lazily on read; there is
// no background sweep and no capacity bound, because keys are the bounded set
// of distinct endpoint+query combinations a session touches.
package respcache

import (
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	value     json.RawMessage
	expiresAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry

	now func() time.Time // overridable in tests
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value stored under key. An entry whose expiry instant lies
// strictly before now is deleted and reported as absent. Callers must not
// mutate the returned payload; entries are shared.
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expiresAt.Before(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key for ttl, unconditionally overwriting any
// previous entry.
func (c *Cache) Put(key string, value json.RawMessage, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

// Len reports the number of live-or-expired entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
