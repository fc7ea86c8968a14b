package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/IvanBrykalov/popcache/boundedmap"
	"github.com/IvanBrykalov/popcache/internal/util"
)

// Cache is a named in-memory key/value store with access statistics.
// It is not self-populating: a miss returns (zero, false).
// All methods are safe for concurrent use by multiple goroutines.
//
// Locking: one RWMutex per Cache. Lookups on an unbounded cache share the
// read side. A bounded cache promotes entries on Get, so its Get takes the
// write side like every mutation does.
type Cache[K comparable, V any] struct {
	name string

	// ---- guarded by mu ----
	mu sync.RWMutex
	st store[K, V]

	opt Options[K, V]
	log *slog.Logger

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_      util.CacheLinePad
	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
	evicts util.PaddedAtomicUint64
}

// New constructs a named Cache.
// It fails with ErrInvalidArgument for an empty name or a negative capacity.
func New[K comparable, V any](name string, opt Options[K, V]) (*Cache[K, V], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: cache name must not be empty", ErrInvalidArgument)
	}
	if opt.Capacity < 0 {
		return nil, fmt.Errorf("%w: cache %q: capacity must be >= 0, got %d", ErrInvalidArgument, name, opt.Capacity)
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Cache[K, V]{
		name: name,
		opt:  opt,
		log:  opt.Logger.With(slog.String("cache", name)),
	}

	if opt.Capacity == 0 {
		c.st = make(plainStore[K, V])
		return c, nil
	}

	bm, err := boundedmap.New(boundedmap.Options[K, V]{
		Capacity: opt.Capacity,
		Policy:   opt.Policy,
		OnEvict:  c.evicted,
	})
	if err != nil {
		return nil, fmt.Errorf("cache %q: %w", name, err)
	}
	c.st = boundedStore[K, V]{m: bm}
	return c, nil
}

// Name returns the cache name given at construction.
func (c *Cache[K, V]) Name() string { return c.name }

// Get returns the value for k and a presence flag.
// Every call counts exactly one hit or one miss.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	v, ok := c.lookup(k)
	if ok {
		c.hits.Add(1)
		c.opt.Metrics.Hit()
	} else {
		c.misses.Add(1)
		c.opt.Metrics.Miss()
	}
	return v, ok
}

// Put stores k→v, overwriting any previous value. On a bounded cache this
// may evict the least recently used entry; an error from Options.OnEvict is
// returned, but the eviction and the insert have both happened.
func (c *Cache[K, V]) Put(k K, v V) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.putLocked(k, v)
}

// Remove deletes k if present.
func (c *Cache[K, V]) Remove(k K) Change {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.remove(k) {
		return Unchanged
	}
	c.opt.Metrics.Size(c.st.len())
	return Changed
}

// Clear drops every entry. Statistics are kept; see ResetStats.
func (c *Cache[K, V]) Clear() Change {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.st.clear()
	if n == 0 {
		return Unchanged
	}
	c.opt.Metrics.Size(0)
	c.log.Debug("cache cleared", slog.Int("entries", n))
	return Changed
}

// Contains reports whether k is present. It neither counts as an
// invocation nor promotes the entry.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.contains(k)
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.st.len()
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.RLock()
	size, capacity := c.st.len(), c.st.capacity()
	c.mu.RUnlock()

	hits, misses := c.hits.Load(), c.misses.Load()
	return Stats{
		Name:        c.name,
		Invocations: hits + misses,
		Hits:        hits,
		Misses:      misses,
		Evictions:   c.evicts.Load(),
		Size:        size,
		Capacity:    capacity,
	}
}

// ResetStats zeroes hits, misses and evictions.
func (c *Cache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evicts.Store(0)
}

// -------------------- internals --------------------

// lookup is Get without statistics. It still promotes on a bounded cache.
func (c *Cache[K, V]) lookup(k K) (V, bool) {
	if c.st.mutatesOnGet() {
		c.mu.Lock()
		defer c.mu.Unlock()
	} else {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}
	return c.st.get(k)
}

// putLocked stores k→v; mu must be held for writing.
func (c *Cache[K, V]) putLocked(k K, v V) error {
	err := c.st.put(k, v)
	c.opt.Metrics.Size(c.st.len())
	return err
}

// evicted is the boundedmap hook; it runs under mu.
func (c *Cache[K, V]) evicted(k K, v V) error {
	c.evicts.Add(1)
	c.opt.Metrics.Evict()
	c.log.Debug("evicted entry", slog.Any("key", k))
	if cb := c.opt.OnEvict; cb != nil {
		return cb(k, v)
	}
	return nil
}
