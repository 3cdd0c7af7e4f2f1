package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for store operations
type Metrics struct {
	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// I/O volume metrics
	BytesRead    prometheus.Counter
	BytesWritten prometheus.Counter

	// Safety-net metrics
	BackupsTotal  prometheus.Counter
	RestoresTotal prometheus.Counter
}

// NewMetrics creates a metrics collector on the default registerer
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector on the given registerer
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "safejson_operations_total",
				Help: "Total number of store operations",
			},
			[]string{"op", "code"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "safejson_operation_duration_seconds",
				Help:    "Store operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"op"},
		),
		BytesRead: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "safejson_bytes_read_total",
				Help: "Total bytes read from JSON files",
			},
		),
		BytesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "safejson_bytes_written_total",
				Help: "Total bytes written to JSON files",
			},
		),
		BackupsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "safejson_backups_total",
				Help: "Total number of backup files created",
			},
		),
		RestoresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "safejson_restores_total",
				Help: "Total number of targets restored from backup",
			},
		),
	}
}

// RecordOperation records a finished operation; code is "ok" on
// success, otherwise the failure code
func (m *Metrics) RecordOperation(op, code string, duration time.Duration) {
	m.OperationsTotal.WithLabelValues(op, code).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// AddBytesRead adds n to the read volume counter
func (m *Metrics) AddBytesRead(n int64) {
	m.BytesRead.Add(float64(n))
}

// AddBytesWritten adds n to the written volume counter
func (m *Metrics) AddBytesWritten(n int64) {
	m.BytesWritten.Add(float64(n))
}

// IncBackups increments the backup counter
func (m *Metrics) IncBackups() {
	m.BackupsTotal.Inc()
}

// IncRestores increments the restore counter
func (m *Metrics) IncRestores() {
	m.RestoresTotal.Inc()
}
