package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard service.
type Metrics struct {
	PageRenders      prometheus.Counter
	ChecklistExports prometheus.Counter
	Authenticated    prometheus.Gauge

	// Earth Engine map-layer request metrics.
	MapRequests        *prometheus.CounterVec // labels: outcome={success,error}
	MapRequestDuration prometheus.Histogram
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PageRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sealevel",
			Name:      "page_renders_total",
			Help:      "Total dashboard page renders.",
		}),
		ChecklistExports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sealevel",
			Name:      "checklist_exports_total",
			Help:      "Total checked-actions CSV downloads.",
		}),
		Authenticated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sealevel",
			Name:      "earthengine_authenticated",
			Help:      "1 after the Earth Engine session is established, 0 before.",
		}),
		MapRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sealevel",
			Name:      "map_requests_total",
			Help:      "Earth Engine map-layer requests by outcome.",
		}, []string{"outcome"}),
		MapRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sealevel",
			Name:      "map_request_duration_seconds",
			Help:      "Earth Engine map-layer request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.PageRenders,
		m.ChecklistExports,
		m.Authenticated,
		m.MapRequests,
		m.MapRequestDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PageRenders:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sealevel", Name: "page_renders_total"}),
		ChecklistExports:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sealevel", Name: "checklist_exports_total"}),
		Authenticated:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sealevel", Name: "earthengine_authenticated"}),
		MapRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sealevel", Name: "map_requests_total"}, []string{"outcome"}),
		MapRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sealevel", Name: "map_request_duration_seconds"}),
	}
}
