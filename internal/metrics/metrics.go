// Package metrics provides Prometheus instrumentation for the version core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instrumentation counters on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	ComparisonCacheHits   prometheus.Counter
	ComparisonCacheMisses prometheus.Counter
	ComparisonsComputed   prometheus.Counter
	VersionsCreated       prometheus.Counter
	SweepsTotal           prometheus.Counter
	VersionsSwept         prometheus.Counter
	ComparisonsSwept      prometheus.Counter
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ComparisonCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "redline_comparison_cache_hits_total",
			Help: "Comparison requests served from the persisted cache",
		}),
		ComparisonCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "redline_comparison_cache_misses_total",
			Help: "Comparison requests that required computation",
		}),
		ComparisonsComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "redline_comparisons_computed_total",
			Help: "Diff and impact computations performed",
		}),
		VersionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "redline_versions_created_total",
			Help: "Document versions created, including rollbacks",
		}),
		SweepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "redline_retention_sweeps_total",
			Help: "Retention sweeps executed",
		}),
		VersionsSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "redline_versions_swept_total",
			Help: "Versions deleted by retention sweeps",
		}),
		ComparisonsSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "redline_comparisons_swept_total",
			Help: "Comparisons deleted by retention sweeps",
		}),
	}
}

// Handler returns the HTTP handler serving the registry in exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
