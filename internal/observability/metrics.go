package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	hostExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opwire",
			Subsystem: "host",
			Name:      "executions_total",
			Help:      "Operation executions served by the host endpoint.",
		},
		[]string{"host", "operation", "kind", "status"},
	)
	hostDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "opwire",
			Subsystem: "host",
			Name:      "execution_duration_seconds",
			Help:      "Operation execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"host", "operation", "kind", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(hostExecutions, hostDuration)
	})
}

func RecordHostExecution(host, operation, kind string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	hostExecutions.WithLabelValues(host, operation, kind, statusLabel).Inc()
	hostDuration.WithLabelValues(host, operation, kind, statusLabel).Observe(duration.Seconds())
}
