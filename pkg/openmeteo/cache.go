package openmeteo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Cache is a concurrent-safe LRU cache for forecast results with TTL
// expiration, keyed by coordinate. It avoids redundant calls for the same
// location within one session; entries are never persisted.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	order      []string // LRU order: front=oldest, back=newest
	maxEntries int
	ttl        time.Duration
	hits       atomic.Int64
	misses     atomic.Int64
}

type cacheEntry struct {
	daily     Daily
	createdAt time.Time
}

// CacheStats contains cache performance statistics.
type CacheStats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// NewCache creates a Cache with the given capacity and TTL.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// coordKey rounds coordinates to ~11m so nearby lookups share an entry.
func coordKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f/%.4f", lat, lon)
}

// Get retrieves a cached forecast. Returns false on miss or expiration.
func (c *Cache) Get(lat, lon float64) (Daily, bool) {
	key := coordKey(lat, lon)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return Daily{}, false
	}

	if time.Since(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.misses.Add(1)
		return Daily{}, false
	}

	// Move to back (most recently used).
	c.removeFromOrder(key)
	c.order = append(c.order, key)
	c.hits.Add(1)
	return entry.daily, true
}

// Put stores a forecast, evicting the oldest entry if at capacity.
// Last writer wins; the short TTL makes that acceptable.
func (c *Cache) Put(lat, lon float64, d Daily) {
	key := coordKey(lat, lon)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = &cacheEntry{daily: d, createdAt: time.Now()}
		c.removeFromOrder(key)
		c.order = append(c.order, key)
		return
	}

	for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{daily: d, createdAt: time.Now()}
	c.order = append(c.order, key)
}

// Stats returns cache performance statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	entries := len(c.entries)
	maxEntries := c.maxEntries
	c.mu.Unlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Entries:    entries,
		MaxEntries: maxEntries,
		Hits:       hits,
		Misses:     misses,
		HitRate:    hitRate,
	}
}

// removeFromOrder removes a key from the LRU order slice.
func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedClient wraps a Client with a Cache.
type CachedClient struct {
	client Client
	cache  *Cache
}

// NewCachedClient wraps client so repeated forecasts for the same
// coordinates within the TTL hit the cache.
func NewCachedClient(client Client, cache *Cache) *CachedClient {
	return &CachedClient{client: client, cache: cache}
}

// Forecast returns a cached result when fresh, otherwise delegates to the
// underlying client. Failed fetches are not cached.
func (c *CachedClient) Forecast(ctx context.Context, lat, lon float64) (*Daily, error) {
	if d, ok := c.cache.Get(lat, lon); ok {
		return &d, nil
	}
	d, err := c.client.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	c.cache.Put(lat, lon, *d)
	return d, nil
}
