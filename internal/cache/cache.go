// Package cache provides a shared in-memory collection cache, one instance
// per entity type. Readers always receive a valid snapshot: a load failure
// keeps the last known good collection in place rather than surfacing an
// error to the filtering layer.
package cache

import (
	"context"
	"log"
	"sync"
)

// Loader fetches the full collection from the backing store.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Collection caches one entity collection. Invalidation is explicit:
// mutations call Invalidate, the next Get reloads. There is no automatic
// refresh after a create; callers that need read-after-write call Refresh.
type Collection[T any] struct {
	name string
	load Loader[T]

	mu          sync.RWMutex
	data        []T
	loaded      bool
	stale       bool
	healthy     bool
	subscribers int
}

// New creates a collection cache around a loader. Nothing is fetched until
// the first Get.
func New[T any](name string, load Loader[T]) *Collection[T] {
	return &Collection[T]{name: name, load: load}
}

// Get returns a snapshot of the collection, loading it on first use or after
// an Invalidate. The returned slice is a copy; callers may filter and sort
// it freely.
func (c *Collection[T]) Get(ctx context.Context) []T {
	c.mu.RLock()
	if c.loaded && !c.stale {
		snapshot := c.snapshotLocked()
		c.mu.RUnlock()
		return snapshot
	}
	c.mu.RUnlock()

	return c.Refresh(ctx)
}

// Refresh refetches the collection. On failure the previous data stays in
// place (stale-but-present) and the cache reports unhealthy.
func (c *Collection[T]) Refresh(ctx context.Context) []T {
	data, err := c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		log.Printf("[ERROR] cache %s: refresh failed, keeping %d cached records: %v", c.name, len(c.data), err)
		c.healthy = false
		if !c.loaded {
			// A failed first load still counts as loaded so readers get an
			// empty collection instead of a retry storm.
			c.loaded = true
			c.stale = false
		}
		// Otherwise stale is left untouched: a pending Invalidate survives
		// the failure, and the next Get retries the loader.
		return c.snapshotLocked()
	}

	c.data = data
	c.loaded = true
	c.stale = false
	c.healthy = true
	return c.snapshotLocked()
}

// Invalidate marks the collection stale; the next Get reloads it.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Healthy reports whether the last load succeeded.
func (c *Collection[T]) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.healthy
}

// Subscribe registers a consumer and returns the current subscriber count.
func (c *Collection[T]) Subscribe() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers++
	return c.subscribers
}

// Unsubscribe deregisters a consumer and returns the remaining count.
func (c *Collection[T]) Unsubscribe() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribers > 0 {
		c.subscribers--
	}
	return c.subscribers
}

func (c *Collection[T]) snapshotLocked() []T {
	snapshot := make([]T, len(c.data))
	copy(snapshot, c.data)
	return snapshot
}
