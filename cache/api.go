package cache

import "context"

// Loader computes the value for a key on a miss.
//
// It runs while the self-populating cache holds its exclusive section, so it
// must not call back into the same cache. It should be deterministic enough
// that recomputing after an eviction yields an equivalent value.
type Loader[K comparable, V any] func(ctx context.Context, k K) (V, error)

// StatsSource is anything that can report a statistics snapshot.
// Both Cache and SelfPopulating implement it.
type StatsSource interface {
	Stats() Stats
}

// Change reports whether a mutating call altered the cache contents.
type Change uint8

const (
	// Unchanged means the call found nothing to do.
	Unchanged Change = iota
	// Changed means at least one entry was removed.
	Changed
)

func (c Change) String() string {
	if c == Changed {
		return "changed"
	}
	return "unchanged"
}

var (
	_ StatsSource = (*Cache[string, int])(nil)
	_ StatsSource = (*SelfPopulating[string, int])(nil)
)
