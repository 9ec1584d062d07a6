// Package cache keeps recently scraped contact records so repeated API
// requests for the same domain skip the browser entirely.
package cache

import (
	"sync"
	"time"

	"github.com/use-agent/scrapo/models"
)

// entry holds a cached record with its creation timestamp.
type entry struct {
	record    models.ContactRecord
	createdAt time.Time
}

// Cache is a simple in-memory cache keyed by target.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache with the given capacity and entry TTL. A background
// goroutine evicts expired entries every 5 minutes.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached record if it exists and has not expired.
func (c *Cache) Get(target string) (models.ContactRecord, bool) {
	c.mu.RLock()
	e, ok := c.store[target]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return models.ContactRecord{}, false
	}
	return e.record, true
}

// Set stores a record. If the cache is at capacity, a random entry is
// evicted to make room (map iteration order is random in Go).
func (c *Cache) Set(target string, rec models.ContactRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[target] = &entry{
		record:    rec,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
