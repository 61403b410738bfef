package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentnest", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentnest", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ViewEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentnest", Name: "view_events_total", Help: "Property view dedup outcomes."},
		[]string{"viewer", "outcome"}, // viewer: user|anonymous, outcome: counted|duplicate|skipped|error
	)
	SlotRejections = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "rentnest", Name: "slot_rejections_total", Help: "Appointment requests rejected for overlap."},
	)
)

// InitRegistry returns a registry with all application collectors registered.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ViewEvents, SlotRejections)
	return reg
}

// MetricsHandler exposes the registry for the /metrics route.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveView(viewer, outcome string) {
	ViewEvents.WithLabelValues(viewer, outcome).Inc()
}
