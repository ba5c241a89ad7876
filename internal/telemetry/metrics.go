package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds every rentspot collector plus the Go/process collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rentspot",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentspot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentspot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	ratingRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentspot",
			Subsystem: "rating",
			Name:      "refreshes_total",
			Help:      "Spot rating recomputations by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	spotCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentspot",
			Subsystem: "cache",
			Name:      "spot_lookups_total",
			Help:      "Spot detail cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		ratingRefreshes,
		spotCacheLookups,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

func RecordHTTPRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordRatingRefresh counts a rating recomputation; source is "inline" or "worker".
func RecordRatingRefresh(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ratingRefreshes.WithLabelValues(source, outcome).Inc()
}

func RecordSpotCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	spotCacheLookups.WithLabelValues(result).Inc()
}
