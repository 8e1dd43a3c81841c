package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus registry. A nil *Collector is
// valid and records nothing, which keeps tests free of registry setup.
type Collector struct {
	registry *prometheus.Registry

	sourceRequests  *prometheus.CounterVec
	sourceDuration  *prometheus.HistogramVec
	searchResults   prometheus.Histogram
	analyzeFallback prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		sourceRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "closet_search_source_requests_total",
				Help: "Product source calls by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		sourceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "closet_search_source_duration_seconds",
				Help:    "Time spent waiting on a product source",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		searchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "closet_search_results",
				Help:    "Products returned per search after ranking",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
		analyzeFallback: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "closet_analyze_fallback_total",
				Help: "Classifier responses that could not be parsed",
			},
		),
	}

	registry.MustRegister(
		c.sourceRequests,
		c.sourceDuration,
		c.searchResults,
		c.analyzeFallback,
		collectors.NewGoCollector(),
	)

	return c
}

// ObserveSource records one product source call. outcome is "ok", "empty"
// or "error".
func (c *Collector) ObserveSource(source, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.sourceRequests.WithLabelValues(source, outcome).Inc()
	c.sourceDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveSearchResults(n int) {
	if c == nil {
		return
	}
	c.searchResults.Observe(float64(n))
}

func (c *Collector) AnalyzeFallback() {
	if c == nil {
		return
	}
	c.analyzeFallback.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
