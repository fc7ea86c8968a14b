package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingMetrics records every signal; safe for concurrent use.
type countingMetrics struct {
	mu                   sync.Mutex
	hits, misses, evicts int
	lastSize             int
	loads, loadErrs      int
}

func (m *countingMetrics) Hit()       { m.mu.Lock(); m.hits++; m.mu.Unlock() }
func (m *countingMetrics) Miss()      { m.mu.Lock(); m.misses++; m.mu.Unlock() }
func (m *countingMetrics) Evict()     { m.mu.Lock(); m.evicts++; m.mu.Unlock() }
func (m *countingMetrics) Size(n int) { m.mu.Lock(); m.lastSize = n; m.mu.Unlock() }
func (m *countingMetrics) Load(_ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if err != nil {
		m.loadErrs++
	}
}

func mustNew[K comparable, V any](t *testing.T, name string, opt Options[K, V]) *Cache[K, V] {
	t.Helper()
	c, err := New[K, V](name, opt)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidArguments(t *testing.T) {
	t.Parallel()

	_, err := New[string, int]("", Options[string, int]{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New[string, int]("neg", Options[string, int]{Capacity: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	c, err := New[string, int]("unbounded", Options[string, int]{})
	require.NoError(t, err)
	assert.Equal(t, "unbounded", c.Name())
	assert.Zero(t, c.Stats().Capacity)
}

// Basic Put/Get/Remove semantics on both store kinds.
func TestCache_BasicPutGetRemove(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, 8} {
		t.Run(strconv.Itoa(capacity), func(t *testing.T) {
			c := mustNew[string, int](t, "basic", Options[string, int]{Capacity: capacity})

			require.NoError(t, c.Put("a", 1))
			require.NoError(t, c.Put("a", 11))

			v, ok := c.Get("a")
			require.True(t, ok)
			assert.Equal(t, 11, v)

			assert.Equal(t, Changed, c.Remove("a"))
			assert.Equal(t, Unchanged, c.Remove("a"))

			_, ok = c.Get("a")
			assert.False(t, ok)
			assert.Zero(t, c.Len())
		})
	}
}

// Capacity 1: the second key pushes the first one out.
func TestCache_EndToEndEviction(t *testing.T) {
	t.Parallel()

	c := mustNew[string, int](t, "test", Options[string, int]{Capacity: 1})

	require.NoError(t, c.Put("In", 1))
	require.NoError(t, c.Put("In2", 2))

	_, ok := c.Get("In")
	assert.False(t, ok, "In must be evicted")

	v, ok := c.Get("In2")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Evictions)
	assert.Equal(t, 1, st.Size)
	assert.Equal(t, 1, st.Capacity)
}

// Accessing "a" promotes it; inserting "c" evicts LRU ("b").
func TestCache_EvictionLRU(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := mustNew[string, int](t, "lru", Options[string, int]{
		Capacity: 2,
		OnEvict: func(k string, _ int) error {
			evicted = append(evicted, k)
			return nil
		},
	})

	require.NoError(t, c.Put("a", 1))
	require.NoError(t, c.Put("b", 2))
	_, ok := c.Get("a")
	require.True(t, ok)
	require.NoError(t, c.Put("c", 3))

	assert.Equal(t, []string{"b"}, evicted)
	assert.True(t, c.Contains("a"))
	assert.True(t, c.Contains("c"))
	assert.False(t, c.Contains("b"))
}

func TestCache_EvictHookErrorIsReturned(t *testing.T) {
	t.Parallel()

	hookErr := errors.New("cleanup failed")
	c := mustNew[string, int](t, "hook", Options[string, int]{
		Capacity: 1,
		OnEvict:  func(string, int) error { return hookErr },
	})

	require.NoError(t, c.Put("a", 1))
	require.ErrorIs(t, c.Put("b", 2), hookErr)

	// post-eviction, post-insert state
	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("b"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_StatsConsistency(t *testing.T) {
	t.Parallel()

	c := mustNew[int, int](t, "stats", Options[int, int]{Capacity: 4})
	for i := 0; i < 4; i++ {
		require.NoError(t, c.Put(i, i))
	}

	for i := 0; i < 20; i++ {
		c.Get(i % 7)
		st := c.Stats()
		require.Equal(t, st.Invocations, st.Hits+st.Misses)
		require.Equal(t, uint64(i+1), st.Invocations)
	}

	// Contains and Len are not invocations.
	c.Contains(1)
	c.Len()
	assert.Equal(t, uint64(20), c.Stats().Invocations)
}

func TestCache_ClearIsIdempotentAndKeepsStats(t *testing.T) {
	t.Parallel()

	c := mustNew[string, int](t, "clear", Options[string, int]{Capacity: 4})
	require.NoError(t, c.Put("a", 1))
	c.Get("a")
	c.Get("x")

	assert.Equal(t, Changed, c.Clear())
	assert.Zero(t, c.Len())
	assert.Equal(t, Unchanged, c.Clear())
	assert.Zero(t, c.Len())

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
	assert.InDelta(t, 0.5, st.HitRatio(), 1e-9)

	c.ResetStats()
	st = c.Stats()
	assert.Zero(t, st.Invocations)
	assert.Zero(t, st.Hits)
	assert.Zero(t, st.Misses)
	assert.Zero(t, st.HitRatio())
}

// Stats is a copy; mutating it must not touch the live counters.
func TestCache_StatsSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	c := mustNew[string, int](t, "snap", Options[string, int]{})
	c.Get("missing")

	st := c.Stats()
	st.Misses = 100
	st.Invocations = 100

	assert.Equal(t, uint64(1), c.Stats().Misses)
}

func TestCache_MetricsSignals(t *testing.T) {
	t.Parallel()

	m := &countingMetrics{}
	c := mustNew[string, int](t, "metrics", Options[string, int]{Capacity: 1, Metrics: m})

	require.NoError(t, c.Put("a", 1))
	c.Get("a")
	c.Get("b")
	require.NoError(t, c.Put("b", 2))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 1, m.misses)
	assert.Equal(t, 1, m.evicts)
	assert.Equal(t, 1, m.lastSize)
}

func TestChange_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "changed", Changed.String())
	assert.Equal(t, "unchanged", Unchanged.String())
}
