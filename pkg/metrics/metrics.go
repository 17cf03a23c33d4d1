// Package metrics exposes Prometheus collectors for the analysis relay.
//
// Metrics:
//   - atlas_provider_attempts_total: outbound model calls by model and outcome
//   - atlas_provider_fallbacks_total: primary failures that switched to the fallback model
//   - atlas_analysis_duration_seconds: end-to-end analysis latency by status
//
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "atlas"

type Collector struct {
	registry *prometheus.Registry

	providerAttempts *prometheus.CounterVec
	fallbacks        prometheus.Counter
	analysisDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with registry.
// If registry is nil a fresh one is created.
func New(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &Collector{
		registry: registry,
		providerAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_attempts_total",
				Help:      "Outbound LLM provider calls by model and outcome",
			},
			[]string{"model", "outcome"},
		),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_fallbacks_total",
			Help:      "Primary model failures retried against the fallback model",
		}),
		analysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Analysis latency in seconds, including provider calls",
				// LLM calls range from sub-second to the 60s provider timeout.
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"status"},
		),
	}
	registry.MustRegister(c.providerAttempts, c.fallbacks, c.analysisDuration)
	return c
}

// RecordProviderAttempt counts one outbound call.
func (c *Collector) RecordProviderAttempt(model, outcome string) {
	if c == nil {
		return
	}
	c.providerAttempts.WithLabelValues(model, outcome).Inc()
}

func (c *Collector) RecordFallback() {
	if c == nil {
		return
	}
	c.fallbacks.Inc()
}

// ObserveAnalysis records how long an analysis took; status is "ok", "invalid" or "failed".
func (c *Collector) ObserveAnalysis(status string, d time.Duration) {
	if c == nil {
		return
	}
	c.analysisDuration.WithLabelValues(status).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
