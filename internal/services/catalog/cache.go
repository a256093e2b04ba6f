package catalog

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Egham-7/models-helper/internal/models"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched catalog stays fresh
const DefaultTTL = 600 * time.Second

const refreshKey = "catalog"

// FetchFunc produces a catalog. It must not fail; fallback data is flagged in the Result.
type FetchFunc func(ctx context.Context) Result

// Clock returns the current time
type Clock func() time.Time

// Option configures a Cache
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests
func WithClock(now Clock) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithTTL sets the validity window of a snapshot
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

type snapshot struct {
	models    []models.ModelDescriptor
	fetchedAt time.Time
}

// Cache holds the last successful catalog fetch and serves it while fresh.
// Fallback results are returned but never stored, so the next call retries the API.
type Cache struct {
	fetch FetchFunc
	now   Clock
	ttl   time.Duration

	mu       sync.RWMutex
	snapshot *snapshot

	sfGroup singleflight.Group
}

// NewCache creates a cache around fetch
func NewCache(fetch FetchFunc, opts ...Option) *Cache {
	c := &Cache{
		fetch: fetch,
		now:   time.Now,
		ttl:   DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetModels returns the current catalog, refreshing it when the snapshot is missing or stale.
// Concurrent refreshes share a single fetch.
func (c *Cache) GetModels(ctx context.Context) []models.ModelDescriptor {
	if cached, ok := c.fresh(); ok {
		return cached
	}

	// The fetch outlives any single caller so one cancelled request
	// does not fail the others waiting on the same refresh.
	refreshCtx := context.WithoutCancel(ctx)
	v, _, shared := c.sfGroup.Do(refreshKey, func() (any, error) {
		if cached, ok := c.fresh(); ok {
			return cached, nil
		}
		return c.refresh(refreshCtx), nil
	})
	if shared {
		fiberlog.Debug("[CATALOG] Joined in-flight refresh")
	}

	return slices.Clone(v.([]models.ModelDescriptor))
}

// refresh stamps the snapshot with the time the request started, so a slow
// fetch does not extend the validity window.
func (c *Cache) refresh(ctx context.Context) []models.ModelDescriptor {
	requestedAt := c.now()
	result := c.fetch(ctx)
	if result.Fallback {
		return result.Models
	}

	c.mu.Lock()
	c.snapshot = &snapshot{
		models:    result.Models,
		fetchedAt: requestedAt,
	}
	c.mu.Unlock()

	fiberlog.Debugf("[CATALOG] Stored snapshot with %d models (ttl %v)", len(result.Models), c.ttl)
	return result.Models
}

func (c *Cache) fresh() ([]models.ModelDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil || c.now().Sub(c.snapshot.fetchedAt) >= c.ttl {
		return nil, false
	}
	return slices.Clone(c.snapshot.models), true
}

// Invalidate drops the current snapshot so the next GetModels refetches
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

// Status reports the age and size of the current snapshot
func (c *Cache) Status() models.CatalogStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return models.CatalogStatus{}
	}

	age := c.now().Sub(c.snapshot.fetchedAt)
	return models.CatalogStatus{
		FetchedAt: c.snapshot.fetchedAt,
		Age:       age,
		Fresh:     age < c.ttl,
		Count:     len(c.snapshot.models),
	}
}
