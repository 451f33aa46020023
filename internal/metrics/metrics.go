// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "training"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

type metrics struct {
	eventsPublished  *prometheus.CounterVec
	identityRequests *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		eventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain event publish attempts.",
		}, []string{"topic", "result"}),
		identityRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_requests_total",
			Help:      "Total number of calls to the user service.",
		}, []string{"operation", "result"}),
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
})

func get() *metrics {
	return metricsSingleton()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// EventPublished counts one publish attempt on topic.
func EventPublished(topic string, err error) {
	get().eventsPublished.WithLabelValues(topic, result(err)).Inc()
}

// IdentityRequest counts one user service call.
func IdentityRequest(operation string, err error) {
	get().identityRequests.WithLabelValues(operation, result(err)).Inc()
}

// HTTPRequest records a served request. route is the matched route pattern.
func HTTPRequest(method, route string, status int, seconds float64) {
	m := get()
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(seconds)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
