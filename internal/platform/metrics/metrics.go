// Package metrics provides Prometheus metrics for the submission tracker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "filedrop"

// Manager owns the registry so multiple instances (e.g. in tests) never
// collide on collector registration.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	filesStored     prometheus.Counter
	fileBytesStored prometheus.Counter
}

func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Manager{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		filesStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "files_stored_total",
			Help:      "Total uploaded files persisted.",
		}),
		fileBytesStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "file_bytes_stored_total",
			Help:      "Total uploaded bytes persisted.",
		}),
	}
}

func (m *Manager) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Manager) ObserveFileStored(bytes int64) {
	m.filesStored.Inc()
	m.fileBytesStored.Add(float64(bytes))
}

// Handler serves the exposition endpoint for this manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
