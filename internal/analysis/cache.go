package analysis

import (
	"sync"
	"time"
)

const (
	cacheMaxEntries = 50
	cacheTTL        = 1 * time.Hour
)

type cacheEntry struct {
	value    Result
	storedAt time.Time
}

// Cache is a bounded, TTL-evicting store of computed results keyed by
// document fingerprint. Safe for concurrent use from independent runs.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewCache constructs a Cache. Non-positive capacity or ttl fall back to the
// package defaults.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = cacheMaxEntries
	}
	if ttl <= 0 {
		ttl = cacheTTL
	}
	return &Cache{
		entries:  make(map[string]cacheEntry),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached result for key. Entries older than the TTL are
// deleted lazily and reported as a miss.
func (c *Cache) Get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return Result{}, false
	}
	return entry.value, true
}

// Put stores a result, evicting one arbitrary entry first if the insert would
// exceed capacity. Eviction order is unspecified; only the size bound holds.
func (c *Cache) Put(key string, value Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		for victim := range c.entries {
			delete(c.entries, victim)
			break
		}
	}
	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
