package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterAndGauge(t *testing.T) {
	r := NewRegistry()

	c := r.NewCounter("test:counter", "a test counter")
	require.Equal(t, int64(0), c.Value())
	c.Inc()
	c.Add(4)
	require.Equal(t, int64(5), c.Value())

	g := r.NewGauge("test:gauge", "a test gauge")
	g.Set(10)
	g.Add(-3)
	g.Inc()
	require.Equal(t, int64(8), g.Value())
}

func TestRegistryIdempotentRegistration(t *testing.T) {
	r := NewRegistry()

	c1 := r.NewCounter("dup", "first registration wins")
	c2 := r.NewCounter("dup", "second registration is ignored")
	require.Same(t, c1, c2)

	c1.Inc()
	require.Equal(t, int64(1), c2.Value())
}

func TestCacheCounters(t *testing.T) {
	r := NewRegistry()
	cc := r.NewCacheCounters("fastfields")

	cc.RecordHit(3, 1024)
	cc.RecordMiss(1)
	cc.NumItems.Set(42)
	cc.NumBytes.Add(2048)

	require.Equal(t, int64(3), cc.NumCacheHitsItems.Value())
	require.Equal(t, int64(1024), cc.NumCacheHitsBytes.Value())
	require.Equal(t, int64(1), cc.NumCacheMissItems.Value())
	require.Equal(t, int64(42), cc.NumItems.Value())
	require.Equal(t, int64(2048), cc.NumBytes.Value())

	counters := r.Counters()
	require.Contains(t, counters, "cache:fastfields:cache_hits_items")
	gauges := r.Gauges()
	require.Contains(t, gauges, "cache:fastfields:num_items")
}

func TestDefaultRegistry(t *testing.T) {
	c1 := NewCounter("shared:counter", "shared across callers")
	c2 := NewCounter("shared:counter", "same name, same metric")
	require.Same(t, c1, c2)
	require.Same(t, Default(), defaultRegistry)
}
