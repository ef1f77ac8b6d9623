package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	lastRows     *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotelens_fetches_total",
				Help: "Total number of quote fetches issued",
			},
			[]string{"function", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotelens_errors_total",
				Help: "Total number of pipeline errors by stage",
			},
			[]string{"stage"},
		),
		lastRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quotelens_normalized_rows",
				Help: "Row count of the last normalized table per symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotelens_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordFetch records a completed quote fetch.
func (r *Recorder) RecordFetch(function, symbol string) {
	r.fetchesTotal.WithLabelValues(function, symbol).Inc()
}

// RecordError records a pipeline error at a stage.
func (r *Recorder) RecordError(stage string) {
	r.errorsTotal.WithLabelValues(stage).Inc()
}

// RecordRows records the row count of the last normalized table.
func (r *Recorder) RecordRows(symbol string, n int) {
	r.lastRows.WithLabelValues(symbol).Set(float64(n))
}

// RecordLatency records stage latency in seconds.
func (r *Recorder) RecordLatency(stage string, seconds float64) {
	r.latency.WithLabelValues(stage).Observe(seconds)
}
