// Package sentiment fronts the external text-analytics provider with a
// per-client rate limit (see ratelimit), an in-memory result cache, and a
// gateway that translates provider failures into domain errors.
package sentiment

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	"github.com/AlessandroLop/evaluacion-api/internal/metrics"
)

// keySeparator joins normalized texts into a cache key. A unit separator
// cannot appear in sane input, so distinct text sets cannot collide.
const keySeparator = "\x1f"

// Key derives the cache key from a set of input texts: trimmed,
// lower-cased, sorted. Two requests with the same texts in different order,
// casing or surrounding whitespace share one entry.
func Key(texts []string) string {
	normalized := make([]string, len(texts))
	for i, t := range texts {
		normalized[i] = strings.ToLower(strings.TrimSpace(t))
	}
	sort.Strings(normalized)
	return strings.Join(normalized, keySeparator)
}

type cacheEntry struct {
	results    []domain.SentimentResult
	insertedAt time.Time
}

// Cache is a time-boxed in-memory cache for provider responses. The size
// bound is a guard, not an eviction policy: once full, new distinct keys
// are dropped until Sweep frees space.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	maxSize int
	clock   clockwork.Clock
}

// NewCache creates a cache holding at most maxSize entries for ttl each.
func NewCache(ttl time.Duration, maxSize int, clock clockwork.Clock) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		clock:   clock,
	}
}

// Get returns the cached results if present and fresh. An expired entry is
// treated as a miss but stays in place until the next Sweep.
func (c *Cache) Get(key string) ([]domain.SentimentResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Since(entry.insertedAt) >= c.ttl {
		return nil, false
	}
	return entry.results, true
}

// Put stores results under key. New distinct keys are silently dropped
// while the cache is at capacity.
func (c *Cache) Put(key string, results []domain.SentimentResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		return
	}
	c.entries[key] = &cacheEntry{results: results, insertedAt: c.clock.Now()}
	metrics.SentimentCacheSize.Set(float64(len(c.entries)))
}

// Sweep removes all expired entries and returns the count removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.insertedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	metrics.SentimentCacheSize.Set(float64(len(c.entries)))
	return removed
}

// Size returns the current number of entries, expired ones included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
