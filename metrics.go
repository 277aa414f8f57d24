package emuconfig

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes recorded per host call.
const (
	outcomeFound       = "found"
	outcomeZero        = "zero"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

// Metrics records boundary lookups and reload passes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	lookups        *prometheus.CounterVec
	reloads        prometheus.Counter
	reloadDuration prometheus.Histogram
}

// NewMetrics creates a metrics set on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "emuconfig",
			Name:      "lookups_total",
			Help:      "Host setting lookups by value kind and outcome",
		}, []string{"kind", "outcome"}),
		reloads: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "emuconfig",
			Name:      "reloads_total",
			Help:      "Completed reload passes",
		}),
		reloadDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "emuconfig",
			Name:      "reload_duration_seconds",
			Help:      "Duration of reload passes",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

// Registry returns the prometheus registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) lookup(kind Kind, outcome string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(kind.String(), outcome).Inc()
}

func (m *Metrics) reload(d time.Duration) {
	if m == nil {
		return
	}
	m.reloads.Inc()
	m.reloadDuration.Observe(d.Seconds())
}
