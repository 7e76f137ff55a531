// Package metrics records tool-call metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Call outcomes.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusInvalid = "invalid"
)

// Recorder collects search metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	latency  prometheus.Histogram
	matches  prometheus.Histogram
	catalog  prometheus.Gauge
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "course_catalog",
			Name:      "tool_calls_total",
			Help:      "search_courses invocations by outcome.",
		}, []string{"tool", "status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "course_catalog",
			Name:      "search_duration_seconds",
			Help:      "Time spent filtering the catalog.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		matches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "course_catalog",
			Name:      "search_matches",
			Help:      "Number of courses returned per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		catalog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "course_catalog",
			Name:      "catalog_courses",
			Help:      "Courses in the loaded catalog.",
		}),
	}
	r.registry.MustRegister(r.calls, r.latency, r.matches, r.catalog)
	return r
}

// SetCatalogSize records the number of courses served.
func (r *Recorder) SetCatalogSize(n int) {
	if r == nil {
		return
	}
	r.catalog.Set(float64(n))
}

// ObserveCall records one tool call.
func (r *Recorder) ObserveCall(tool, status string, elapsed time.Duration, matches int) {
	if r == nil {
		return
	}
	r.calls.WithLabelValues(tool, status).Inc()
	if status == StatusOK {
		r.latency.Observe(elapsed.Seconds())
		r.matches.Observe(float64(matches))
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
