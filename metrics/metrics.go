// Package metrics wraps prometheus collectors behind small Counter/Gauge/
// Averager types: in-process mutex-guarded state mirrored into prometheus
// so callers never need to handle a registration error mid-operation.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter tracks a monotonically increasing count.
type Counter interface {
	Inc()
	Add(delta float64)
	Read() float64
}

type counter struct {
	mu   sync.RWMutex
	val  float64
	prom prometheus.Counter
}

// Gauge tracks a value that can move in either direction.
type Gauge interface {
	Set(value float64)
	Add(delta float64)
	Read() float64
}

type gauge struct {
	mu   sync.RWMutex
	val  float64
	prom prometheus.Gauge
}

// Averager tracks a running mean of observed values.
type Averager interface {
	Observe(value float64)
	Read() float64
}

type averager struct {
	mu    sync.RWMutex
	sum   float64
	count float64
	prom  prometheus.Summary
}

// Registry creates and owns the process's metrics, registering each one
// with the supplied prometheus.Registerer as it is created.
type Registry struct {
	reg prometheus.Registerer

	mu        sync.RWMutex
	counters  map[string]Counter
	gauges    map[string]Gauge
	averagers map[string]Averager
}

// NewRegistry returns a Registry backed by reg. A nil reg is valid and
// yields in-process-only metrics (no prometheus registration), useful in
// tests.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return &Registry{
		reg:       reg,
		counters:  make(map[string]Counter),
		gauges:    make(map[string]Gauge),
		averagers: make(map[string]Averager),
	}
}

// NewCounter creates, registers, and returns a named counter.
func (r *Registry) NewCounter(name, help string) Counter {
	c := &counter{}
	if r.reg != nil {
		c.prom = prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		_ = r.reg.Register(c.prom)
	}
	r.mu.Lock()
	r.counters[name] = c
	r.mu.Unlock()
	return c
}

// NewGauge creates, registers, and returns a named gauge.
func (r *Registry) NewGauge(name, help string) Gauge {
	g := &gauge{}
	if r.reg != nil {
		g.prom = prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
		_ = r.reg.Register(g.prom)
	}
	r.mu.Lock()
	r.gauges[name] = g
	r.mu.Unlock()
	return g
}

// NewAverager creates, registers, and returns a named averager.
func (r *Registry) NewAverager(name, help string) Averager {
	a := &averager{}
	if r.reg != nil {
		a.prom = prometheus.NewSummary(prometheus.SummaryOpts{Name: name, Help: help})
		_ = r.reg.Register(a.prom)
	}
	r.mu.Lock()
	r.averagers[name] = a
	r.mu.Unlock()
	return a
}

// CounterValue looks up a previously created counter by name and reads
// its current value, for callers (typically tests) that only hold the
// Registry, not the Counter handle itself.
func (r *Registry) CounterValue(name string) (float64, error) {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("metrics: no counter named %q", name)
	}
	return c.Read(), nil
}

func (c *counter) Inc() { c.Add(1) }

func (c *counter) Add(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val += delta
	if c.prom != nil {
		c.prom.Add(delta)
	}
}

func (c *counter) Read() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

func (g *gauge) Set(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.val = value
	if g.prom != nil {
		g.prom.Set(value)
	}
}

func (g *gauge) Add(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.val += delta
	if g.prom != nil {
		g.prom.Add(delta)
	}
}

func (g *gauge) Read() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.val
}

func (a *averager) Observe(value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sum += value
	a.count++
	if a.prom != nil {
		a.prom.Observe(value)
	}
}

func (a *averager) Read() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.count == 0 {
		return 0
	}
	return a.sum / a.count
}
