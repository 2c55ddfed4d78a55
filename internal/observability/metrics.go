package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	usersCreated    prometheus.Counter
	tokensIssued    prometheus.Counter
}

// NewMetrics creates collectors registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "directory_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_domain_errors_total",
			Help: "Domain errors returned to clients by kind and code.",
		}, []string{"kind", "code"}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directory_users_created_total",
			Help: "Users created.",
		}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directory_tokens_issued_total",
			Help: "Auth tokens issued.",
		}),
	}
	m.registry.MustRegister(m.requests, m.requestDuration, m.errors, m.usersCreated, m.tokensIssued)
	return m
}

// Registry exposes the registry for the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(kind, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(kind, code).Inc()
}

func (m *Metrics) IncUsersCreated() {
	if m == nil {
		return
	}
	m.usersCreated.Inc()
}

func (m *Metrics) IncTokensIssued() {
	if m == nil {
		return
	}
	m.tokensIssued.Inc()
}
