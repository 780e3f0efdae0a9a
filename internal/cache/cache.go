package cache

import (
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a fixed TTL memo. Entries expire lazily when read; there is no
// background sweeper and no size bound.
//
// generation is bumped by Clear so a value computed before a Clear can be
// refused by SetIfGeneration.
type Cache[V any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	entries    map[string]entry[V]
	generation uint64
	now        func() time.Time
}

func New[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}

// Get returns the value stored under key if it is younger than the TTL.
// A stale or missing entry is evicted and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && c.now().Sub(e.storedAt) < c.ttl {
		return e.value, true
	}
	delete(c.entries, key)

	var zero V
	return zero, false
}

// Generation returns the current generation; read it before computing a value
func (c *Cache[V]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetIfGeneration stores value only if no Clear happened since generation was read
func (c *Cache[V]) SetIfGeneration(key string, value V, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return false
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	return true
}

func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.generation++
}

func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}
