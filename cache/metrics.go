package cache

import "time"

// Metrics exposes cache-level observability hooks.
// Implementations must be safe for concurrent use.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict()
	Size(entries int)
	// Load observes one run of a self-populating cache's loader.
	Load(d time.Duration, err error)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                      {}
func (NoopMetrics) Miss()                     {}
func (NoopMetrics) Evict()                    {}
func (NoopMetrics) Size(int)                  {}
func (NoopMetrics) Load(time.Duration, error) {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
