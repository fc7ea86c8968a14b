package cache

// Stats is a point-in-time snapshot of a cache's counters.
// Invocations is always Hits + Misses.
type Stats struct {
	Name        string
	Invocations uint64
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Size        int
	// Capacity is 0 for an unbounded cache.
	Capacity int
}

// HitRatio returns Hits/Invocations, or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	if s.Invocations == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Invocations)
}
