// Package cache provides a bounded, thread-safe TTL cache.
//
// Eviction at capacity removes the entry with the oldest insertion time,
// not the least recently used one. Reading an expired entry removes it and
// reports absence, so callers never observe stale data.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
	expiresAt  time.Time
}

// Cache is a mutex-guarded key/value map with per-entry expiry and a fixed
// capacity. Different instances tune capacity and TTL to the volatility of
// what they hold (profile names: large and long, leaderboard: tiny and short).
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]entry[V]
	capacity int
	ttl      time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// New creates a cache holding at most capacity entries, each living for the
// default ttl unless SetTTL overrides it.
func New[K comparable, V any](capacity int, ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]entry[V], capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the value for key. An expired entry is removed and reported
// as absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key with an explicit TTL. When the cache is at
// capacity and key is not already present, the entry with the oldest
// insertion time is evicted first.
func (c *Cache[K, V]) SetTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldestLocked()
	}
	c.entries[key] = entry[V]{
		value:      value,
		insertedAt: now,
		expiresAt:  now.Add(ttl),
	}
}

// evictOldestLocked removes the entry with the oldest insertion time.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldestLocked() {
	var (
		oldestKey K
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.insertedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.insertedAt
			found = true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

// Delete removes key if present.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V], c.capacity)
}

// Sweep removes all expired entries and returns how many were removed.
func (c *Cache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
