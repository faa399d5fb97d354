// Package metrics exposes query controller activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/ports"
)

const namespace = "painpoint"

// Outcome label values for painpoint_submissions_total.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

// Collector implements ports.Metrics on a caller-owned registry.
type Collector struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	shapes      *prometheus.CounterVec
	duration    prometheus.Histogram
	inFlight    prometheus.Gauge
}

// NewCollector registers all collectors on reg. A nil reg gets a fresh registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total number of submissions by outcome",
			},
			[]string{"outcome"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Total number of failed submissions by error kind",
			},
			[]string{"kind"},
		),
		shapes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "response_shapes_total",
				Help:      "Successful responses by recognized body shape",
			},
			[]string{"shape"},
		),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of upstream generation requests in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "in_flight",
			Help:      "Number of upstream requests currently outstanding",
		}),
	}
}

// DispatchStarted marks an upstream request as outstanding.
func (c *Collector) DispatchStarted() {
	c.inFlight.Inc()
}

// DispatchFinished records the request duration and clears the outstanding mark.
func (c *Collector) DispatchFinished(elapsed time.Duration) {
	c.inFlight.Dec()
	c.duration.Observe(elapsed.Seconds())
}

// Outcome counts a terminal state.
func (c *Collector) Outcome(state domain.QueryState) {
	switch state.Phase {
	case domain.PhaseSucceeded:
		c.submissions.WithLabelValues(OutcomeSucceeded).Inc()
		if state.Result != nil {
			c.shapes.WithLabelValues(string(state.Result.Shape)).Inc()
		}
	case domain.PhaseFailed:
		c.submissions.WithLabelValues(OutcomeFailed).Inc()
		if state.Err != nil {
			c.failures.WithLabelValues(string(state.Err.Kind)).Inc()
		}
	}
}

// Rejected counts a submission refused because another was in flight.
func (c *Collector) Rejected() {
	c.submissions.WithLabelValues(OutcomeRejected).Inc()
}

// Registry returns the registry the collectors live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

var _ ports.Metrics = (*Collector)(nil)
