// Package metrics provides Prometheus instrumentation for shared caches.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one cache.
type Metrics struct {
	// Lookup metrics
	Hits   prometheus.Counter
	Misses prometheus.Counter

	// Write metrics
	Insertions prometheus.Counter
	Updates    prometheus.Counter
	Evictions  prometheus.Counter

	// State
	Entries  prometheus.Gauge
	Poisoned prometheus.Gauge
}

// NewMetrics creates metrics under the given namespace and registers
// them with reg. A nil reg leaves the collectors unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of lookups that found their key",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of lookups that did not find their key",
		}),

		Insertions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insertions_total",
			Help:      "Total number of adds that introduced a new key",
		}),
		Updates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Total number of adds that overwrote a present key",
		}),
		Evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of entries removed to respect capacity",
		}),

		Entries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Current number of entries held",
		}),
		Poisoned: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "poisoned",
			Help:      "1 once the cache has been poisoned by a failed critical section",
		}),
	}
}

// RecordGet records a lookup outcome.
func (m *Metrics) RecordGet(hit bool) {
	if hit {
		m.Hits.Inc()
	} else {
		m.Misses.Inc()
	}
}

// RecordAdd records an add that either introduced a key or updated one.
func (m *Metrics) RecordAdd(updated bool) {
	if updated {
		m.Updates.Inc()
	} else {
		m.Insertions.Inc()
	}
}

// RecordEvictions adds n capacity-driven removals.
func (m *Metrics) RecordEvictions(n int) {
	if n > 0 {
		m.Evictions.Add(float64(n))
	}
}

// SetEntries updates the entries gauge.
func (m *Metrics) SetEntries(n int) {
	m.Entries.Set(float64(n))
}

// SetPoisoned flips the poisoned gauge.
func (m *Metrics) SetPoisoned() {
	m.Poisoned.Set(1)
}
