package lru

import "github.com/venkatsvpr/sharedlru/metrics"

// Option configures a Cache at construction.
type Option[K comparable, V any] func(*Cache[K, V])

// Cloner copies a value before it leaves the cache. Use one when V holds
// references (slices, maps, pointers) that callers must not share with
// the stored entry.
type Cloner[V any] func(V) V

// WithEvict registers a callback for every entry that leaves the cache.
// The callback runs after the lock is released.
func WithEvict[K comparable, V any](onEvicted func(key K, value V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvictedCB = onEvicted
	}
}

// WithCloner makes Get, Peek and GetOldest return clone(value) instead of
// the stored value. clone runs while the lock is held; a panic inside it
// poisons the cache.
func WithCloner[K comparable, V any](clone Cloner[V]) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.cloner = clone
	}
}

// WithMetrics reports hits, misses, writes and evictions to m.
func WithMetrics[K comparable, V any](m *metrics.Metrics) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.metrics = m
	}
}
