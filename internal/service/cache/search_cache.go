package cache

import (
	"sync"
	"time"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
)

const (
	DefaultSearchTTL      = 5 * time.Minute
	DefaultSearchCapacity = 50
)

type searchEntry struct {
	storedAt time.Time
	results  []models.WebSearchResult
}

// SearchCache stores web search results keyed by query text. Entries expire
// after a fixed TTL (removed lazily on lookup) and, at capacity, the
// oldest-inserted key is evicted first (insertion order, not access order).
// Empty result sets are never stored. Safe for concurrent use.
type SearchCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	entries  map[string]searchEntry
	order    []string
}

// NewSearchCache builds a cache with the given TTL, capacity and clock.
// Zero values fall back to the defaults; a nil clock uses time.Now.
func NewSearchCache(ttl time.Duration, capacity int, now func() time.Time) *SearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	if capacity <= 0 {
		capacity = DefaultSearchCapacity
	}
	if now == nil {
		now = time.Now
	}
	return &SearchCache{
		ttl:      ttl,
		capacity: capacity,
		now:      now,
		entries:  make(map[string]searchEntry),
	}
}

// Get returns the stored results for query, or ok=false when absent or
// older than the TTL. Expired entries are removed on lookup.
func (c *SearchCache) Get(query string) ([]models.WebSearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		c.removeLocked(query)
		return nil, false
	}
	return e.results, true
}

// Put stores a non-empty result set for query. Re-inserting an existing key
// resets its age and moves it to the back of the eviction order.
func (c *SearchCache) Put(query string, results []models.WebSearchResult) {
	if len(results) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[query]; ok {
		c.removeLocked(query)
	}
	if len(c.entries) >= c.capacity {
		c.removeLocked(c.order[0])
	}
	c.entries[query] = searchEntry{storedAt: c.now(), results: results}
	c.order = append(c.order, query)
}

// Len reports the number of live entries.
func (c *SearchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *SearchCache) removeLocked(query string) {
	delete(c.entries, query)
	for i, k := range c.order {
		if k == query {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
