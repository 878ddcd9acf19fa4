// Package logger reports engine metrics through zap. Every update is
// logged at debug level; Flush writes one info line with the totals, which
// is what a CLI run prints under --verbose.
package logger

import (
	"slices"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/discochess/tictactoe/internal/stats"
)

var _ stats.Collector = (*Collector)(nil)

// Collector accumulates counters, gauges and histogram sums.
type Collector struct {
	log *zap.Logger

	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]int64
	observed map[string]summary
}

type summary struct {
	n   int64
	sum float64
}

// New returns a Collector writing to log, or nowhere if log is nil.
func New(log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		log:      log,
		counters: make(map[string]int64),
		gauges:   make(map[string]int64),
		observed: make(map[string]summary),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.mu.Lock()
	c.counters[name] += delta
	total := c.counters[name]
	c.mu.Unlock()

	if ce := c.log.Check(zapcore.DebugLevel, "counter"); ce != nil {
		ce.Write(zap.String("metric", name), zap.Int64("delta", delta), zap.Int64("total", total))
	}
}

func (c *Collector) SetGauge(name string, value int64) {
	c.mu.Lock()
	c.gauges[name] = value
	c.mu.Unlock()

	if ce := c.log.Check(zapcore.DebugLevel, "gauge"); ce != nil {
		ce.Write(zap.String("metric", name), zap.Int64("value", value))
	}
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	c.mu.Lock()
	s := c.observed[name]
	s.n++
	s.sum += value
	c.observed[name] = s
	c.mu.Unlock()

	if ce := c.log.Check(zapcore.DebugLevel, "histogram"); ce != nil {
		ce.Write(zap.String("metric", name), zap.Float64("value", value))
	}
}

// Total returns the running total of a counter.
func (c *Collector) Total(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[name]
}

// Flush logs every metric seen so far as fields of a single info entry,
// sorted by name. Histograms contribute their count and mean.
func (c *Collector) Flush() {
	c.mu.Lock()
	fields := make([]zap.Field, 0, len(c.counters)+len(c.gauges)+2*len(c.observed))
	for name, v := range c.counters {
		fields = append(fields, zap.Int64(name, v))
	}
	for name, v := range c.gauges {
		fields = append(fields, zap.Int64(name, v))
	}
	for name, s := range c.observed {
		fields = append(fields,
			zap.Int64(name+"_count", s.n),
			zap.Float64(name+"_mean", s.sum/float64(s.n)),
		)
	}
	c.mu.Unlock()

	if len(fields) == 0 {
		return
	}
	slices.SortFunc(fields, func(a, b zap.Field) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	c.log.Info("metrics", fields...)
}
