package nestoria

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxAge is how old a cached response may be before it is refetched
const DefaultMaxAge = 5 * time.Minute

// FetchFunc performs the network call on a cache miss
type FetchFunc func(ctx context.Context) ([]byte, error)

// cacheEntry is a raw response body and the time it was fetched
type cacheEntry struct {
	fetchedAt time.Time
	body      []byte
}

// Cache memoizes raw response bodies by exact request URL.
// Entries are never evicted, only marked stale or cleared.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
	now     func() time.Time
	logger  zerolog.Logger
	metrics *Metrics
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCacheLogger sets the logger used for hit/miss debug output
func WithCacheLogger(logger zerolog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithCacheMetrics records hits and misses on m
func WithCacheMetrics(m *Metrics) CacheOption {
	return func(c *Cache) {
		c.metrics = m
	}
}

// NewCache creates an empty cache
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// lookup returns the cached body for url if it is younger than maxAge
func (c *Cache) lookup(url string, maxAge time.Duration) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[url]
	if !ok || c.now().Sub(entry.fetchedAt) >= maxAge {
		return nil, false
	}
	return entry.body, true
}

// Fetch returns the cached body for url when it is fresh, otherwise calls
// fetch and stores its result. Concurrent misses on the same url share a
// single call, which runs detached from any one caller's cancellation; a
// caller whose ctx ends stops waiting without failing the others.
// A failed fetch leaves the cache untouched.
func (c *Cache) Fetch(ctx context.Context, url string, maxAge time.Duration, fetch FetchFunc) ([]byte, error) {
	if body, ok := c.lookup(url, maxAge); ok {
		c.metrics.cacheHit()
		c.logger.Debug().Str("url", url).Msg("Cache hit")
		return body, nil
	}

	fetchCtx := context.WithoutCancel(ctx)

	// set only when this caller's function runs, i.e. it leads the flight
	var leader bool
	ch := c.group.DoChan(url, func() (any, error) {
		leader = true

		// another caller may have refreshed the entry while we queued
		if body, ok := c.lookup(url, maxAge); ok {
			c.metrics.cacheHit()
			return body, nil
		}

		c.metrics.cacheMiss()
		c.logger.Debug().Str("url", url).Msg("Cache miss, fetching")

		body, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[url] = cacheEntry{fetchedAt: c.now(), body: body}
		c.mu.Unlock()

		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if !leader {
			c.metrics.cacheHit()
			c.logger.Debug().Str("url", url).Msg("Shared in-flight fetch")
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate marks the entry for url stale so the next Fetch refetches it.
// The entry itself is kept. Unknown URLs are ignored.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[url]; ok {
		entry.fetchedAt = time.Time{}
		c.entries[url] = entry
	}
}

// InvalidateAll discards every entry
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of stored entries, stale ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
