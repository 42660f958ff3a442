package resources

import (
	"context"
	"sync"

	"marquee/internal/resourcecache"
)

// Snapshot is the state a consumer renders for one resource key.
type Snapshot[T any] struct {
	Data    T
	Loaded  bool
	Loading bool
	Err     error
}

// Resource binds a cache family to its fetch function for one key.
type Resource[T any] struct {
	cache *resourcecache.Cache[T]
	key   string
	fetch func(context.Context) (T, error)

	mu       sync.Mutex
	loading  int
	lastData T
	loaded   bool
	lastErr  error
}

// New creates a Resource for one key of a cache family.
func New[T any](cache *resourcecache.Cache[T], key string, fetch func(context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{cache: cache, key: key, fetch: fetch}
}

// Get returns the resource value, fetching through the cache as needed.
// Concurrent Gets for the same key share one underlying fetch.
func (r *Resource[T]) Get(ctx context.Context) (T, error) {
	r.mu.Lock()
	r.loading++
	r.mu.Unlock()

	value, err := r.cache.GetOrFetch(ctx, r.key, r.fetch)

	r.mu.Lock()
	r.loading--
	r.lastErr = err
	if err == nil {
		r.lastData = value
		r.loaded = true
	}
	r.mu.Unlock()
	return value, err
}

// Refetch invalidates the cached value and fetches again.
func (r *Resource[T]) Refetch(ctx context.Context) (T, error) {
	r.cache.Invalidate(r.key)
	return r.Get(ctx)
}

// Snapshot reports the last observed state without triggering a fetch.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{
		Data:    r.lastData,
		Loaded:  r.loaded,
		Loading: r.loading > 0,
		Err:     r.lastErr,
	}
}
