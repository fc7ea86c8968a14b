package cache

import (
	"log/slog"

	"github.com/IvanBrykalov/popcache/boundedmap"
	"github.com/IvanBrykalov/popcache/policy"
)

// Options configures a Cache. Zero values are safe;
// defaults are applied in New():
//   - Capacity == 0 => unbounded
//   - nil Policy    => LRU (bounded caches only)
//   - nil Metrics   => NoopMetrics
//   - nil Logger    => discard
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. Zero means unbounded;
	// negative values are rejected.
	Capacity int

	// Policy picks eviction victims for a bounded cache; nil => LRU.
	// Ignored when Capacity == 0.
	Policy policy.Policy[K, V]

	// OnEvict is called on capacity eviction under the cache write lock;
	// keep callbacks lightweight and never call back into the cache.
	// An error is returned from the Put that triggered the eviction.
	OnEvict boundedmap.EvictFunc[K, V]

	// Metrics receives Hit/Miss/Evict/Size/Load signals.
	Metrics Metrics

	// Logger receives debug events (evictions, loads, clears).
	// Errors are always returned to the caller, never only logged.
	Logger *slog.Logger
}
