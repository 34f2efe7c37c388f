package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// optimization service.
type Metrics struct {
	RunsTotal      *prometheus.CounterVec // labels: origin={primary,fallback}
	FallbacksTotal *prometheus.CounterVec // labels: reason={unknown_region,fetch_error,invalid_data}
	PersistErrors  prometheus.Counter
	DataSourceUp   prometheus.Gauge

	// Per-run metrics.
	RunDuration   prometheus.Histogram
	SitesReturned prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenh2",
			Name:      "optimization_runs_total",
			Help:      "Completed optimization runs by origin.",
		}, []string{"origin"}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenh2",
			Name:      "fallbacks_total",
			Help:      "Runs served by the simulation engine, by reason.",
		}, []string{"reason"}),
		PersistErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "greenh2",
			Name:      "persist_errors_total",
			Help:      "Failed attempts to record run results in the database.",
		}),
		DataSourceUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "greenh2",
			Name:      "datasource_up",
			Help:      "1 when the site database answers pings, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "greenh2",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete optimization run.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SitesReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "greenh2",
			Name:      "sites_returned",
			Help:      "Number of recommended sites per run.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.FallbacksTotal,
		m.PersistErrors,
		m.DataSourceUp,
		m.RunDuration,
		m.SitesReturned,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RunsTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "greenh2", Name: "optimization_runs_total"}, []string{"origin"}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "greenh2", Name: "fallbacks_total"}, []string{"reason"}),
		PersistErrors:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "greenh2", Name: "persist_errors_total"}),
		DataSourceUp:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "greenh2", Name: "datasource_up"}),
		RunDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "greenh2", Name: "run_duration_seconds"}),
		SitesReturned:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "greenh2", Name: "sites_returned"}),
	}
}
