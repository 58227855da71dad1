package lru

import (
	"runtime/debug"
	"sync"

	"github.com/venkatsvpr/sharedlru/metrics"
	"github.com/venkatsvpr/sharedlru/simplelru"
)

const (
	// DefaultEvictedBufferSize defines the default buffer size to store evicted key/val
	DefaultEvictedBufferSize = 16
)

// Cache is a thread-safe fixed size LRU cache.
type Cache[K comparable, V any] struct {
	lru         *simplelru.LRU[K, V]
	evictedKeys []K
	evictedVals []V
	onEvictedCB func(k K, v V)
	cloner      Cloner[V]
	metrics     *metrics.Metrics

	lock   sync.Mutex
	poison *PoisonError
}

// New creates an LRU of the given size. A size of zero gives a cache that
// never retains an entry; a negative size is rejected.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	return NewWithOpts[K, V](size)
}

// NewWithEvict constructs a fixed size cache with the given eviction
// callback.
func NewWithEvict[K comparable, V any](size int, onEvicted func(key K, value V)) (*Cache[K, V], error) {
	return NewWithOpts(size, WithEvict(onEvicted))
}

// NewWithOpts constructs a fixed size cache configured by opts.
func NewWithOpts[K comparable, V any](size int, opts ...Option[K, V]) (*Cache[K, V], error) {
	c := &Cache[K, V]{}
	for _, opt := range opts {
		opt(c)
	}

	var onEvicted simplelru.EvictCallback[K, V]
	if c.onEvictedCB != nil || c.metrics != nil {
		c.initEvictBuffers()
		onEvicted = c.onEvicted
	}

	lru, err := simplelru.NewLRU(size, onEvicted)
	if err != nil {
		return nil, err
	}
	c.lru = lru
	if c.metrics != nil {
		c.metrics.SetEntries(0)
	}
	return c, nil
}

func (c *Cache[K, V]) initEvictBuffers() {
	c.evictedKeys = make([]K, 0, DefaultEvictedBufferSize)
	c.evictedVals = make([]V, 0, DefaultEvictedBufferSize)
}

// onEvicted save evicted key/val and sent in externally registered callback
// outside critical section
func (c *Cache[K, V]) onEvicted(k K, v V) {
	c.evictedKeys = append(c.evictedKeys, k)
	c.evictedVals = append(c.evictedVals, v)
}

// takeEvicted hands over the buffered evictions. Has to be called with lock!
func (c *Cache[K, V]) takeEvicted() (ks []K, vs []V) {
	if len(c.evictedKeys) == 0 {
		return nil, nil
	}
	ks, vs = c.evictedKeys, c.evictedVals
	c.initEvictBuffers()
	return ks, vs
}

// deliver runs the user callback for buffered evictions, outside the lock.
func (c *Cache[K, V]) deliver(ks []K, vs []V) {
	if c.onEvictedCB == nil {
		return
	}
	for i := 0; i < len(ks); i++ {
		c.onEvictedCB(ks[i], vs[i])
	}
}

// withLock runs fn as the critical section named op. A cache poisoned by
// an earlier failure returns its PoisonError without running fn. A panic
// inside fn poisons the cache, releases the lock and is re-raised. The
// re-raised panic's trace starts in the deferred recover; the stack of the
// original fault is kept in PoisonError.Stack.
func (c *Cache[K, V]) withLock(op string, fn func()) error {
	c.lock.Lock()
	if c.poison != nil {
		err := c.poison
		c.lock.Unlock()
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			c.poison = &PoisonError{Op: op, Value: r, Stack: debug.Stack()}
			if c.metrics != nil {
				c.metrics.SetPoisoned()
			}
			c.lock.Unlock()
			panic(r)
		}
		c.lock.Unlock()
	}()
	fn()
	return nil
}

func (c *Cache[K, V]) clone(v V) V {
	if c.cloner == nil {
		return v
	}
	return c.cloner(v)
}

// add inserts key and records the write. Has to be called with lock!
func (c *Cache[K, V]) add(key K, value V) (evicted bool) {
	var updated bool
	if c.metrics != nil {
		updated = c.lru.Contains(key)
	}
	evicted = c.lru.Add(key, value)
	if c.metrics != nil {
		c.metrics.RecordAdd(updated)
		c.metrics.RecordEvictions(len(c.evictedKeys))
	}
	return evicted
}

// syncEntries publishes the current length. Has to be called with lock!
func (c *Cache[K, V]) syncEntries() {
	if c.metrics != nil {
		c.metrics.SetEntries(c.lru.Len())
	}
}

// Poisoned reports whether a critical section has failed on this cache.
func (c *Cache[K, V]) Poisoned() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.poison != nil
}

// Purge is used to completely clear the cache.
func (c *Cache[K, V]) Purge() error {
	var ks []K
	var vs []V
	err := c.withLock("purge", func() {
		c.lru.Purge()
		ks, vs = c.takeEvicted()
		c.syncEntries()
	})
	if err != nil {
		return err
	}
	c.deliver(ks, vs)
	return nil
}

// Add adds a value to the cache. Returns true if an eviction occurred.
// Overwriting a present key moves it to the front and never evicts.
func (c *Cache[K, V]) Add(key K, value V) (evicted bool, err error) {
	var ks []K
	var vs []V
	err = c.withLock("add", func() {
		evicted = c.add(key, value)
		ks, vs = c.takeEvicted()
		c.syncEntries()
	})
	if err != nil {
		return false, err
	}
	c.deliver(ks, vs)
	return evicted, nil
}

// Get looks up a key's value from the cache. A miss is reported through
// ok and is not an error.
func (c *Cache[K, V]) Get(key K) (value V, ok bool, err error) {
	err = c.withLock("get", func() {
		value, ok = c.lru.Get(key)
		if ok {
			value = c.clone(value)
		}
		if c.metrics != nil {
			c.metrics.RecordGet(ok)
		}
	})
	if err != nil {
		return value, false, err
	}
	return value, ok, nil
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *Cache[K, V]) Contains(key K) (ok bool, err error) {
	err = c.withLock("contains", func() {
		ok = c.lru.Contains(key)
	})
	return ok && err == nil, err
}

// Peek returns the key value (or undefined if not found) without updating
// the "recently used"-ness of the key.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool, err error) {
	err = c.withLock("peek", func() {
		value, ok = c.lru.Peek(key)
		if ok {
			value = c.clone(value)
		}
	})
	return value, ok && err == nil, err
}

// ContainsOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns whether found and whether an eviction occurred.
func (c *Cache[K, V]) ContainsOrAdd(key K, value V) (ok, evicted bool, err error) {
	var ks []K
	var vs []V
	err = c.withLock("contains or add", func() {
		if c.lru.Contains(key) {
			ok = true
			return
		}
		evicted = c.add(key, value)
		ks, vs = c.takeEvicted()
		c.syncEntries()
	})
	if err != nil {
		return false, false, err
	}
	c.deliver(ks, vs)
	return ok, evicted, nil
}

// PeekOrAdd checks if a key is in the cache without updating the
// recent-ness or deleting it for being stale, and if not, adds the value.
// Returns the present value, whether found and whether an eviction occurred.
func (c *Cache[K, V]) PeekOrAdd(key K, value V) (previous V, ok, evicted bool, err error) {
	var ks []K
	var vs []V
	err = c.withLock("peek or add", func() {
		previous, ok = c.lru.Peek(key)
		if ok {
			previous = c.clone(previous)
			return
		}
		evicted = c.add(key, value)
		ks, vs = c.takeEvicted()
		c.syncEntries()
	})
	if err != nil {
		var zero V
		return zero, false, false, err
	}
	c.deliver(ks, vs)
	return previous, ok, evicted, nil
}

// Remove removes the provided key from the cache.
func (c *Cache[K, V]) Remove(key K) (present bool, err error) {
	var ks []K
	var vs []V
	err = c.withLock("remove", func() {
		present = c.lru.Remove(key)
		ks, vs = c.takeEvicted()
		c.syncEntries()
	})
	if err != nil {
		return false, err
	}
	c.deliver(ks, vs)
	return present, nil
}

// Resize changes the cache size, returning the number of entries evicted.
func (c *Cache[K, V]) Resize(size int) (evicted int, err error) {
	var ks []K
	var vs []V
	err = c.withLock("resize", func() {
		evicted = c.lru.Resize(size)
		ks, vs = c.takeEvicted()
		if c.metrics != nil {
			c.metrics.RecordEvictions(evicted)
		}
		c.syncEntries()
	})
	if err != nil {
		return 0, err
	}
	c.deliver(ks, vs)
	return evicted, nil
}

// RemoveOldest removes the oldest item from the cache.
func (c *Cache[K, V]) RemoveOldest() (key K, value V, ok bool, err error) {
	var ks []K
	var vs []V
	err = c.withLock("remove oldest", func() {
		key, value, ok = c.lru.RemoveOldest()
		ks, vs = c.takeEvicted()
		c.syncEntries()
	})
	if err != nil {
		return key, value, false, err
	}
	c.deliver(ks, vs)
	return key, value, ok, nil
}

// GetOldest returns the oldest entry
func (c *Cache[K, V]) GetOldest() (key K, value V, ok bool, err error) {
	err = c.withLock("get oldest", func() {
		key, value, ok = c.lru.GetOldest()
		if ok {
			value = c.clone(value)
		}
	})
	return key, value, ok && err == nil, err
}

// Keys returns a slice of the keys in the cache, from oldest to newest.
func (c *Cache[K, V]) Keys() (keys []K, err error) {
	err = c.withLock("keys", func() {
		keys = c.lru.Keys()
	})
	return keys, err
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() (length int, err error) {
	err = c.withLock("len", func() {
		length = c.lru.Len()
	})
	return length, err
}

// Cap returns the capacity of the cache.
func (c *Cache[K, V]) Cap() (size int, err error) {
	err = c.withLock("cap", func() {
		size = c.lru.Cap()
	})
	return size, err
}
