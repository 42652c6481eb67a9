// Package metrics implements a process-wide registry of named counters and
// gauges, used by storage and search subsystems to publish cache and query
// statistics. The metrics are plain atomically-updated integers; there is
// no exposition format here, only registration and snapshot reads.
package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Counter is a monotonically increasing named integer metric.
type Counter struct {
	name string
	help string
	v    atomic.Int64
}

// Name returns the counter's registered name.
func (c *Counter) Name() string { return c.name }

// Help returns the counter's human-readable description.
func (c *Counter) Help() string { return c.help }

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.v.Add(1) }

// Add increments the counter by delta. delta must be non-negative; callers
// wanting a metric that can decrease want a Gauge instead.
func (c *Counter) Add(delta int64) {
	if delta < 0 {
		delta = 0
	}
	c.v.Add(delta)
}

// Value returns the counter's current value.
func (c *Counter) Value() int64 { return c.v.Load() }

// Gauge is a named integer metric that can move in either direction.
type Gauge struct {
	name string
	help string
	v    atomic.Int64
}

// Name returns the gauge's registered name.
func (g *Gauge) Name() string { return g.name }

// Help returns the gauge's human-readable description.
func (g *Gauge) Help() string { return g.help }

// Set sets the gauge to an absolute value.
func (g *Gauge) Set(v int64) { g.v.Store(v) }

// Add adjusts the gauge by delta, which may be negative.
func (g *Gauge) Add(delta int64) { g.v.Add(delta) }

// Inc increments the gauge by 1.
func (g *Gauge) Inc() { g.v.Add(1) }

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() { g.v.Add(-1) }

// Value returns the gauge's current value.
func (g *Gauge) Value() int64 { return g.v.Load() }

// Registry is a process-wide collection of named counters and gauges.
// Registration is idempotent by name: a second NewCounter/NewGauge call for
// a name already registered returns the existing metric rather than
// creating a duplicate.
type Registry struct {
	mu       sync.Mutex
	counters map[string]*Counter
	gauges   map[string]*Gauge
}

// NewRegistry returns an empty Registry. Most callers should use the
// process-wide Default registry instead of creating their own; tests that
// want isolation from global state should construct one directly.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]*Counter),
		gauges:   make(map[string]*Gauge),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry shared by every component that
// doesn't build its own.
func Default() *Registry { return defaultRegistry }

// NewCounter registers (or returns the already-registered) counter with the
// given name and help text.
func (r *Registry) NewCounter(name, help string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[name]; ok {
		return c
	}
	c := &Counter{name: name, help: help}
	r.counters[name] = c
	return c
}

// NewGauge registers (or returns the already-registered) gauge with the
// given name and help text.
func (r *Registry) NewGauge(name, help string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := &Gauge{name: name, help: help}
	r.gauges[name] = g
	return g
}

// Counters returns a snapshot of every registered counter's name and value.
func (r *Registry) Counters() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int64, len(r.counters))
	for name, c := range r.counters {
		out[name] = c.Value()
	}
	return out
}

// Gauges returns a snapshot of every registered gauge's name and value.
func (r *Registry) Gauges() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int64, len(r.gauges))
	for name, g := range r.gauges {
		out[name] = g.Value()
	}
	return out
}

// NewCounter registers a counter on the Default registry.
func NewCounter(name, help string) *Counter { return defaultRegistry.NewCounter(name, help) }

// NewGauge registers a gauge on the Default registry.
func NewGauge(name, help string) *Gauge { return defaultRegistry.NewGauge(name, help) }

// CacheCounters is the per-component cache instrumentation set the storage
// and search subsystems register: item/byte gauges plus hit/miss counters,
// namespaced by component name.
type CacheCounters struct {
	ComponentName     string
	NumItems          *Gauge
	NumBytes          *Gauge
	NumCacheHitsItems *Counter
	NumCacheHitsBytes *Counter
	NumCacheMissItems *Counter
}

// NewCacheCounters registers a CacheCounters set on r, namespaced under
// "cache:<componentName>:...".
func (r *Registry) NewCacheCounters(componentName string) *CacheCounters {
	prefix := fmt.Sprintf("cache:%s", componentName)
	return &CacheCounters{
		ComponentName: componentName,
		NumItems: r.NewGauge(
			prefix+":num_items",
			fmt.Sprintf("Number of %s items in cache", componentName),
		),
		NumBytes: r.NewGauge(
			prefix+":num_bytes",
			fmt.Sprintf("Number of %s bytes in cache", componentName),
		),
		NumCacheHitsItems: r.NewCounter(
			prefix+":cache_hits_items",
			fmt.Sprintf("Number of %s cache hits in items", componentName),
		),
		NumCacheHitsBytes: r.NewCounter(
			prefix+":cache_hits_bytes",
			fmt.Sprintf("Number of %s cache hits in bytes", componentName),
		),
		NumCacheMissItems: r.NewCounter(
			prefix+":cache_miss_items",
			fmt.Sprintf("Number of %s cache miss in items", componentName),
		),
	}
}

// RecordHit records a cache hit of n items totaling nBytes.
func (c *CacheCounters) RecordHit(n, nBytes int64) {
	c.NumCacheHitsItems.Add(n)
	c.NumCacheHitsBytes.Add(nBytes)
}

// RecordMiss records a cache miss of n items.
func (c *CacheCounters) RecordMiss(n int64) {
	c.NumCacheMissItems.Add(n)
}
