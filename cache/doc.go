// Package cache provides a named, generic, thread-safe in-memory cache with
// optional LRU bounding, hit/miss/eviction statistics, and a self-populating
// wrapper that computes missing values at most once per key.
//
// Design
//
//   - Cache: a name, a store and counters. With Options.Capacity == 0 the
//     store is a plain Go map; with Capacity > 0 it is a boundedmap.Map that
//     evicts according to Options.Policy (LRU by default). One RWMutex
//     guards the store.
//
//   - Statistics: hits, misses and evictions are atomic counters padded to
//     separate cache lines. Stats returns a snapshot by value; Invocations
//     is derived as Hits+Misses so the two can never disagree. Clear keeps
//     the counters, ResetStats zeroes them.
//
//   - SelfPopulating: wraps a *Cache and a Loader. Get does a read-locked
//     lookup first; on a miss it takes the write side of its own RWMutex,
//     checks again, and only then runs the loader and stores the result.
//     The loader runs inside that exclusive section, so loads for different
//     keys are serialized and a slow loader holds up every Get on the
//     instance. Remove and Clear take the same section.
//
//   - Errors: constructor misuse returns ErrInvalidArgument; a loader that
//     returns nil yields ErrInvariantViolation; loader and OnEvict errors
//     are returned unchanged. Nothing is retried internally.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size/Load signals.
//     NoopMetrics is the default; metrics/prom provides a Prometheus adapter.
//
//   - Callbacks: Options.OnEvict(k, v) runs for every capacity eviction
//     under the write lock, never for Remove or Clear.
//
// Basic usage
//
//	c, err := cache.New[string, []byte]("blobs", cache.Options[string, []byte]{Capacity: 10_000})
//	if err != nil {
//	    return err
//	}
//	_ = c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// Self-populating
//
//	c, _ := cache.New[string, *User]("users", cache.Options[string, *User]{Capacity: 1024})
//	users, _ := cache.NewSelfPopulating(c, func(ctx context.Context, id string) (*User, error) {
//	    return db.LoadUser(ctx, id)
//	})
//	u, err := users.Get(ctx, "42")
//
// Caches are plain values: build them at startup and pass them to whatever
// needs them. The package keeps no global state.
package cache
