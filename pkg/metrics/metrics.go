// Package metrics defines the Prometheus collectors that count reconciled
// fields and time reconciliation batches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "nfsqa"

// Field outcomes used as the "outcome" label.
const (
	OutcomeClean      = "clean"
	OutcomeWarned     = "warned"
	OutcomeUnresolved = "unresolved"
)

// Batch statuses used as the "status" label.
const (
	StatusOK       = "ok"
	StatusInvalid  = "invalid"
	StatusCanceled = "canceled"
)

// Metrics holds the Prometheus collectors for reconciliation.
type Metrics struct {
	FieldsTotal   *prometheus.CounterVec
	WarningsTotal prometheus.Counter
	BatchesTotal  *prometheus.CounterVec
	BatchDuration prometheus.Histogram

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		FieldsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "fields_total",
				Help:      "Total fields reconciled by dispatch strategy and outcome (clean, warned, unresolved).",
			},
			[]string{"strategy", "outcome"},
		),
		WarningsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "warnings_total",
				Help:      "Total warnings attached to reconciled fields.",
			},
		),
		BatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "batches_total",
				Help:      "Total reconciliation batches by status (ok, invalid, canceled).",
			},
			[]string{"status"},
		),
		BatchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "batch_duration_seconds",
				Help:      "Reconciliation batch latency in seconds.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FieldsTotal,
		m.WarningsTotal,
		m.BatchesTotal,
		m.BatchDuration,
	)

	return m
}

// ObserveField counts one reconciled field.
func (m *Metrics) ObserveField(strategy string, warnings int, unresolved bool) {
	outcome := OutcomeClean
	switch {
	case unresolved:
		outcome = OutcomeUnresolved
	case warnings > 0:
		outcome = OutcomeWarned
	}
	m.FieldsTotal.WithLabelValues(strategy, outcome).Inc()
	m.WarningsTotal.Add(float64(warnings))
}

// ObserveBatch records the status and duration of one batch.
func (m *Metrics) ObserveBatch(status string, d time.Duration) {
	m.BatchesTotal.WithLabelValues(status).Inc()
	m.BatchDuration.Observe(d.Seconds())
}

// Gatherer returns the registry holding the collectors.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current metric values to path in the text
// exposition format read by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
