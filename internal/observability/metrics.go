package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "megactl",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total megaverse API requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "megactl",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Megaverse API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "megactl",
			Subsystem: "reconcile",
			Name:      "mutations_total",
			Help:      "Mutations dispatched by the reconciler.",
		},
		[]string{"action", "object", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration, mutations)
	})
}

func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	apiRequests.WithLabelValues(method, endpoint, statusLabel).Inc()
	apiDuration.WithLabelValues(method, endpoint, statusLabel).Observe(duration.Seconds())
}

func RecordMutation(action, object string, success bool) {
	RegisterMetrics()
	mutations.WithLabelValues(action, object, strconv.FormatBool(success)).Inc()
}
