// Package prometheus exports engine metrics to a Prometheus registry.
// Metrics are created and registered on first update.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/tictactoe/internal/stats"
)

// SearchBuckets span single searches, from a table hit in about a
// microsecond to a cold solve of the empty board.
var SearchBuckets = prometheus.ExponentialBuckets(1e-6, 4, 10)

var _ stats.Collector = (*Collector)(nil)

// Collector implements stats.Collector on a Registerer.
type Collector struct {
	registry prometheus.Registerer

	mu      sync.RWMutex
	metrics map[string]prometheus.Collector
}

// New returns a Collector registering into registry, or into
// prometheus.DefaultRegisterer if registry is nil.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{registry: registry, metrics: make(map[string]prometheus.Collector)}
}

func (c *Collector) IncCounter(name string, delta int64) {
	if m, ok := c.metric(name, newCounter).(prometheus.Counter); ok {
		m.Add(float64(delta))
	}
}

func (c *Collector) SetGauge(name string, value int64) {
	if m, ok := c.metric(name, newGauge).(prometheus.Gauge); ok {
		m.Set(float64(value))
	}
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	if m, ok := c.metric(name, newHistogram).(prometheus.Histogram); ok {
		m.Observe(value)
	}
}

func newCounter(name string) prometheus.Collector {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: stats.Help(name)})
}

func newGauge(name string) prometheus.Collector {
	return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: stats.Help(name)})
}

func newHistogram(name string) prometheus.Collector {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    stats.Help(name),
		Buckets: SearchBuckets,
	})
}

// metric returns the collector registered under name, creating it with
// create on first use. If the registry already holds a collector of that
// name, that one is adopted. A metric the registry rejects still counts
// locally but is not exported.
func (c *Collector) metric(name string, create func(string) prometheus.Collector) prometheus.Collector {
	c.mu.RLock()
	m, ok := c.metrics[name]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.metrics[name]; ok {
		return m
	}

	m = create(name)
	var are prometheus.AlreadyRegisteredError
	if err := c.registry.Register(m); errors.As(err, &are) {
		m = are.ExistingCollector
	}
	c.metrics[name] = m
	return m
}
