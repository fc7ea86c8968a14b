package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/popcache/cache"
)

// Collector reads Stats snapshots at scrape time. Unlike Adapter it needs
// no hook in the hot path, and one Collector can cover many caches.
type Collector struct {
	sources []cache.StatsSource

	invocations *prometheus.Desc
	hits        *prometheus.Desc
	misses      *prometheus.Desc
	evictions   *prometheus.Desc
	size        *prometheus.Desc
	capacity    *prometheus.Desc
}

// NewCollector builds a Collector over sources. Register it with
// prometheus.Registerer.MustRegister.
func NewCollector(ns string, sources ...cache.StatsSource) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(ns, "cache", name), help, []string{"cache"}, nil)
	}
	return &Collector{
		sources:     sources,
		invocations: desc("invocations_total", "Lookups counted by the cache"),
		hits:        desc("stats_hits_total", "Lookups that found a value"),
		misses:      desc("stats_misses_total", "Lookups that found nothing"),
		evictions:   desc("stats_evictions_total", "Entries evicted to stay within capacity"),
		size:        desc("entries", "Resident entries"),
		capacity:    desc("capacity_entries", "Configured capacity, 0 when unbounded"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.invocations
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.size
	ch <- c.capacity
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, src := range c.sources {
		st := src.Stats()
		ch <- prometheus.MustNewConstMetric(c.invocations, prometheus.CounterValue, float64(st.Invocations), st.Name)
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(st.Hits), st.Name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(st.Misses), st.Name)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(st.Evictions), st.Name)
		ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(st.Size), st.Name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity), st.Name)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
