// Package metrics provides Prometheus observability for the store and export
// paths. All methods are nil-receiver safe so tests can pass a nil *Metrics
// and skip registration entirely.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's instruments.
type Metrics struct {
	// Record and community mutations by collection and operation
	Mutations *prometheus.CounterVec

	// Storage gateway failures by collection and operation
	StorageErrors *prometheus.CounterVec

	// Finished exports by kind ("records", "addresses")
	Exports *prometheus.CounterVec

	// PDF rendering latency
	ExportLatency prometheus.Histogram
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crud_mutations_total",
			Help: "Total collection mutations by collection and operation",
		}, []string{"collection", "op"}), // op: "add", "update", "delete", "delete_all"

		StorageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crud_storage_errors_total",
			Help: "Total storage gateway failures by collection and operation",
		}, []string{"collection", "op"}), // op: "read", "write"

		Exports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crud_exports_total",
			Help: "Total completed PDF exports by kind",
		}, []string{"kind"}),

		ExportLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crud_export_duration_seconds",
			Help:    "Duration of PDF export rendering",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementMutation records one applied mutation.
func (m *Metrics) IncrementMutation(collection, op string) {
	if m != nil {
		m.Mutations.WithLabelValues(collection, op).Inc()
	}
}

// IncrementStorageError records one failed storage operation.
func (m *Metrics) IncrementStorageError(collection, op string) {
	if m != nil {
		m.StorageErrors.WithLabelValues(collection, op).Inc()
	}
}

// IncrementExport records one completed export.
func (m *Metrics) IncrementExport(kind string) {
	if m != nil {
		m.Exports.WithLabelValues(kind).Inc()
	}
}

// ObserveExportLatency records how long a render took.
func (m *Metrics) ObserveExportLatency(d time.Duration) {
	if m != nil {
		m.ExportLatency.Observe(d.Seconds())
	}
}
