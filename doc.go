// Package lru provides a bounded LRU cache that is safe to share between
// goroutines.
//
// Cache wraps a single simplelru.LRU behind one mutex. Every operation,
// lookups included, takes that mutex for its whole duration, because a
// lookup moves the key to the most recently used position. A *Cache is
// the shared handle: copy the pointer to hand the same cache to another
// goroutine.
//
// If a critical section panics (a Cloner that panics, an interface key
// holding an unhashable value) the cache is poisoned. The panicking
// call re-panics in its own goroutine and every later call, on any
// handle, returns a *PoisonError matching ErrPoisoned. A poisoned cache
// cannot be repaired; build a new one.
package lru
