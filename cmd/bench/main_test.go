package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/popcache/cache"
)

func TestRun_ShortWorkload(t *testing.T) {
	c, err := cache.New[string, string]("bench-test", cache.Options[string, string]{Capacity: 64})
	require.NoError(t, err)
	sp, err := cache.NewSelfPopulating(c, func(_ context.Context, k string) (string, error) {
		return "v:" + k, nil
	})
	require.NoError(t, err)

	res, err := run(sp, workload{
		workers:  4,
		duration: 50 * time.Millisecond,
		readPct:  90,
		keys:     1_000,
		zipfS:    1.1,
		zipfV:    1.0,
		seed:     1,
	})
	require.NoError(t, err)

	assert.Positive(t, res.ops)
	assert.Equal(t, res.ops, res.gets+res.removes)
	assert.LessOrEqual(t, sp.Len(), 64)

	st := sp.Stats()
	assert.Equal(t, st.Invocations, st.Hits+st.Misses)
}
