package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by the executor hooks.
type Metrics struct {
	Builds   *prometheus.CounterVec
	Skipped  prometheus.Counter
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them, with the Go runtime
// and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsflow_artifact_builds_total",
				Help: "Total number of artifact builds by result.",
			},
			[]string{"result"},
		),
		Skipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "rsflow_artifact_skipped_total",
				Help: "Total number of artifacts skipped because they were up to date.",
			},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rsflow_artifact_build_duration_seconds",
				Help:    "Duration of artifact builds.",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"program"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "rsflow_artifact_builds_in_flight",
				Help: "Number of artifact builds currently running.",
			},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.Builds, m.Skipped, m.Duration, m.InFlight)
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuildStart: func(_ context.Context, _ *domain.BuildEvent) {
			m.InFlight.Inc()
		},
		OnBuildFinish: func(_ context.Context, e *domain.BuildEvent) {
			m.InFlight.Dec()
			result := "success"
			if e.Failed() {
				result = "failure"
			}
			m.Builds.WithLabelValues(result).Inc()

			// Labelled by the first program of the pipeline.
			program := "unknown"
			if len(e.Programs) > 0 {
				program = e.Programs[0]
			}
			m.Duration.WithLabelValues(program).Observe(e.Duration.Seconds())
		},
		OnBuildSkipped: func(_ context.Context, _ *domain.BuildEvent) {
			m.Skipped.Inc()
		},
	}
}

// Gatherer exposes the registry, mostly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
