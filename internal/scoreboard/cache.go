package scoreboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Refresh cadence and retry policy for the live scoreboard.
const (
	DefaultTTL       = 10 * time.Second
	refreshAttempts  = 4
	refreshBaseDelay = 500 * time.Millisecond
)

// FetchFunc fetches a fresh scoreboard. week == 0 requests the upstream's
// current slate; otherwise the (year, week) window.
type FetchFunc func(ctx context.Context, year, week int) (Payload, error)

type cacheEntry struct {
	payload   Payload
	expiresAt time.Time
}

// Cache is a TTL cache over scoreboard fetches with single-flight refresh
// and stale-on-error fallback. One instance is owned by the service and
// handed to the handlers; there is no package-level state.
type Cache struct {
	fetch     FetchFunc
	logger    *slog.Logger
	ttl       time.Duration
	baseDelay time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// NewCache creates a scoreboard cache with the default TTL.
func NewCache(fetch FetchFunc, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		fetch:     fetch,
		logger:    logger,
		ttl:       DefaultTTL,
		baseDelay: refreshBaseDelay,
		entries:   make(map[string]cacheEntry),
	}
}

// Get returns the cached scoreboard for (year, week), refreshing when the
// entry is expired or absent. Concurrent callers for the same key collapse
// into one upstream fetch. When the refresh fails after retries and a stale
// entry exists, the stale copy is returned with its source annotated.
func (c *Cache) Get(ctx context.Context, year, week int) (Payload, error) {
	key := fmt.Sprintf("%d:%d", year, week)

	if p, ok := c.fresh(key); ok {
		return p, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have refreshed while we waited.
		if p, ok := c.fresh(key); ok {
			return p, nil
		}
		return c.refresh(ctx, key, year, week)
	})
	if err != nil {
		return Payload{}, err
	}
	return v.(Payload), nil
}

func (c *Cache) fresh(key string) (Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return Payload{}, false
	}
	return e.payload, true
}

func (c *Cache) refresh(ctx context.Context, key string, year, week int) (Payload, error) {
	delay := c.baseDelay
	var lastErr error

	for attempt := 0; attempt < refreshAttempts; attempt++ {
		p, err := c.fetch(ctx, year, week)
		if err == nil {
			c.mu.Lock()
			c.entries[key] = cacheEntry{payload: p, expiresAt: time.Now().Add(c.ttl)}
			c.mu.Unlock()
			return p, nil
		}
		lastErr = err
		c.logger.Warn("scoreboard refresh failed", "key", key, "attempt", attempt+1, "error", err)

		if attempt < refreshAttempts-1 {
			select {
			case <-ctx.Done():
				return Payload{}, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	// Serve the stale copy rather than failing the caller.
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		stale := e.payload
		stale.Source = stale.Source + " (stale)"
		c.logger.Warn("serving stale scoreboard", "key", key, "error", lastErr)
		return stale, nil
	}

	return Payload{}, fmt.Errorf("refresh scoreboard %s: %w", key, lastErr)
}
