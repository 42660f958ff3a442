package resourcecache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"marquee/internal/durable"
	"marquee/internal/logging"
)

// Entry pairs a cached value with the time it was fetched. It is also the
// shape persisted to the durable store.
type Entry[T any] struct {
	Value    T         `json:"value"`
	CachedAt time.Time `json:"cached_at"`
}

// Cache is a keyed TTL cache with fetch coalescing for one resource family.
// The zero freshness window means every entry is immediately stale, so reads
// always refetch while failures can still fall back to the last good value.
type Cache[T any] struct {
	name   string
	window time.Duration
	store  *durable.Store
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]Entry[T]
	flight  singleflight.Group
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithDurable attaches a durable store; entries survive process restarts.
func WithDurable[T any](store *durable.Store) Option[T] {
	return func(c *Cache[T]) {
		c.store = store
	}
}

// WithClock overrides the cache's time source.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a cache for the named resource family.
func New[T any](name string, window time.Duration, logger *slog.Logger, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		name:    name,
		window:  window,
		logger:  logging.NewComponentLogger(logger, "resourcecache"),
		now:     time.Now,
		entries: make(map[string]Entry[T]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for id if one is present and fresh. On a
// memory miss it attempts to hydrate from the durable store; hydration
// failures of any kind count as a miss, never an error.
func (c *Cache[T]) Get(id string) (T, bool) {
	now := c.now()

	c.mu.Lock()
	entry, ok := c.entries[id]
	c.mu.Unlock()
	if ok && c.fresh(entry, now) {
		return entry.Value, true
	}
	if ok {
		// A stale memory entry shadows anything durable; it is at least
		// as recent.
		var zero T
		return zero, false
	}

	if entry, ok := c.hydrate(id); ok && c.fresh(entry, now) {
		c.mu.Lock()
		c.entries[id] = entry
		c.mu.Unlock()
		return entry.Value, true
	}

	var zero T
	return zero, false
}

// Set stores the value in memory immediately and best-effort persists it.
func (c *Cache[T]) Set(id string, value T) {
	entry := Entry[T]{Value: value, CachedAt: c.now()}

	c.mu.Lock()
	c.entries[id] = entry
	c.mu.Unlock()

	c.persist(id, entry)
}

// Invalidate removes one entry from memory and the durable store.
func (c *Cache[T]) Invalidate(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Delete(context.Background(), c.name, id); err != nil && !errors.Is(err, durable.ErrUnavailable) {
			c.logger.Warn("durable delete failed",
				logging.String(logging.FieldResource, c.name),
				logging.String(logging.FieldKey, id),
				logging.Error(err))
		}
	}
}

// Clear removes every entry for this resource family.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Entry[T])
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.DeleteBucket(context.Background(), c.name); err != nil && !errors.Is(err, durable.ErrUnavailable) {
			c.logger.Warn("durable clear failed",
				logging.String(logging.FieldResource, c.name),
				logging.Error(err))
		}
	}
}

// Reset drops all in-memory state, including coalesced flights. Test hook.
func (c *Cache[T]) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]Entry[T])
	c.flight = singleflight.Group{}
	c.mu.Unlock()
}

// GetOrFetch returns a fresh cached value when present; otherwise it joins
// the in-flight fetch for id or starts one. At most one fetch per id is
// outstanding at any time. A failed fetch falls back to the last good value
// when one exists.
func (c *Cache[T]) GetOrFetch(ctx context.Context, id string, fetch func(context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(id); ok {
		return value, nil
	}

	result, err, _ := c.flight.Do(id, func() (any, error) {
		// A fetch that settled while this caller was queueing may have
		// already filled the cache.
		if value, ok := c.Get(id); ok {
			return value, nil
		}
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(id, value)
		return value, nil
	})
	if err != nil {
		if stale, ok := c.lastKnown(id); ok {
			c.logger.Warn("fetch failed, serving stale value",
				logging.String(logging.FieldEventType, "cache_fetch_degraded"),
				logging.String(logging.FieldResource, c.name),
				logging.String(logging.FieldKey, id),
				logging.Error(err),
				logging.String(logging.FieldImpact, "data may be out of date"))
			return stale.Value, nil
		}
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// lastKnown returns the most recent entry regardless of freshness.
func (c *Cache[T]) lastKnown(id string) (Entry[T], bool) {
	c.mu.Lock()
	entry, ok := c.entries[id]
	c.mu.Unlock()
	if ok {
		return entry, true
	}
	return c.hydrate(id)
}

// fresh reports whether the entry is inside the freshness window. A zero
// window marks every entry stale on arrival: reads always refetch, while
// the entry stays around for failure fallback.
func (c *Cache[T]) fresh(entry Entry[T], now time.Time) bool {
	return c.window > 0 && now.Sub(entry.CachedAt) <= c.window
}

func (c *Cache[T]) hydrate(id string) (Entry[T], bool) {
	if c.store == nil {
		return Entry[T]{}, false
	}
	raw, err := c.store.Get(context.Background(), c.name, id)
	if err != nil {
		if !errors.Is(err, durable.ErrNotFound) && !errors.Is(err, durable.ErrUnavailable) {
			c.logger.Debug("durable hydrate failed",
				logging.String(logging.FieldResource, c.name),
				logging.String(logging.FieldKey, id),
				logging.Error(err))
		}
		return Entry[T]{}, false
	}
	var entry Entry[T]
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Debug("durable entry corrupt",
			logging.String(logging.FieldResource, c.name),
			logging.String(logging.FieldKey, id),
			logging.Error(err))
		return Entry[T]{}, false
	}
	return entry, true
}

func (c *Cache[T]) persist(id string, entry Entry[T]) {
	if c.store == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err == nil {
		err = c.store.Put(context.Background(), c.name, id, raw)
	}
	if err != nil && !errors.Is(err, durable.ErrUnavailable) {
		c.logger.Warn("durable persist failed",
			logging.String(logging.FieldEventType, "cache_persist_failed"),
			logging.String(logging.FieldResource, c.name),
			logging.String(logging.FieldKey, id),
			logging.Error(err),
			logging.String(logging.FieldImpact, "entry will not survive restart"))
	}
}
