package app

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperifyio/goautotags/internal/tagger"
)

// Metrics records extraction outcomes on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	extractions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autotags_extractions_total",
			Help: "Tag extractions by method and outcome (tags or empty).",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "autotags_extraction_duration_seconds",
			Help:    "Time spent extracting tags.",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 30, 60},
		}, []string{"method"}),
	}
	m.registry.MustRegister(m.extractions, m.duration)
	return m
}

func (m *Metrics) observe(method tagger.Method, tags int, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "tags"
	if tags == 0 {
		outcome = "empty"
	}
	m.extractions.WithLabelValues(string(method), outcome).Inc()
	m.duration.WithLabelValues(string(method)).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
