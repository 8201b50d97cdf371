package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timeline_operations_total",
			Help: "Pipeline operations by outcome",
		},
		[]string{"operation", "status"},
	)
	duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "timeline_operation_duration_seconds",
			Help:    "Pipeline operation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	tracksIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "timeline_tracks_ingested_total",
			Help: "Tracks accepted by the parser",
		},
	)

	registerOnce sync.Once
)

// Register adds the pipeline collectors to the default registry. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(operations, duration, tracksIngested)
	})
}

// Observe records the outcome and latency of one pipeline operation.
func Observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	operations.WithLabelValues(operation, status).Inc()
	duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// TracksIngested adds n accepted tracks.
func TracksIngested(n int) {
	tracksIngested.Add(float64(n))
}
