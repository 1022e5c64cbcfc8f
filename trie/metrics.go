package trie

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// trieMetrics holds the Prometheus collectors shared by every Trie in the
// process: a package-level singleton, registered once via sync.Once, rather
// than per-instance collectors, which would collide on re-registration.
type trieMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *trieMetrics
)

func metricsInstance() *trieMetrics {
	metricsOnce.Do(func() {
		m := &trieMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "mpt_operations_total",
				Help: "Count of trie operations by kind and outcome.",
			}, []string{"op", "result"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "mpt_operation_duration_seconds",
				Help:    "Latency of trie operations, including store round trips.",
				Buckets: prometheus.DefBuckets,
			}, []string{"op"}),
		}
		prometheus.MustRegister(m.operations, m.duration)
		sharedMetrics = m
	})
	return sharedMetrics
}

// observe records one operation's outcome and wall-clock cost. result is
// "ok", "not_found", or "error".
func (m *trieMetrics) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
		result = "ok"
	case isNotFound(err):
		result = "not_found"
	default:
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
