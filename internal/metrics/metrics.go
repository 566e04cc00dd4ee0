// Package metrics provides Prometheus metrics for the saved cart service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SaveTotal counts upsert operations.
	SaveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "savecart",
			Name:      "save_total",
			Help:      "Total number of saved cart upserts",
		},
		[]string{"status"},
	)

	// RetrieveTotal counts retrieve operations.
	RetrieveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "savecart",
			Name:      "retrieve_total",
			Help:      "Total number of saved cart retrievals",
		},
		[]string{"status"},
	)

	// SavedItems observes how many items each save carries.
	SavedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "savecart",
			Name:      "saved_items",
			Help:      "Distribution of item counts per save",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)

	// StorageDuration measures storage round trips.
	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "savecart",
			Name:      "storage_duration_seconds",
			Help:      "Duration of storage operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "savecart",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "code"},
	)

	// ErrorsTotal counts errors by type.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "savecart",
			Name:      "errors_total",
			Help:      "Total number of errors",
		},
		[]string{"operation", "error_type"},
	)
)

// RecordSave records an upsert and its outcome.
func RecordSave(status string, items int, duration float64) {
	SaveTotal.WithLabelValues(status).Inc()
	StorageDuration.WithLabelValues("upsert").Observe(duration)
	if status == "ok" {
		SavedItems.Observe(float64(items))
	}
}

// RecordRetrieve records a retrieve and its outcome.
func RecordRetrieve(status string, duration float64) {
	RetrieveTotal.WithLabelValues(status).Inc()
	StorageDuration.WithLabelValues("get").Observe(duration)
}

// RecordError records an error.
func RecordError(operation, errorType string) {
	ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
