// Package metrics provides Prometheus metrics for the Gavel service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors published on /metrics.
type Metrics struct {
	// Ingestion
	RowsIngested *prometheus.CounterVec
	IngestErrors prometheus.Counter

	// Persistence
	DatasetSaves  *prometheus.CounterVec
	DatasetLoads  *prometheus.CounterVec
	StoreFailures prometheus.Counter

	// Alerting
	AlertsEmitted *prometheus.CounterVec

	// HTTP
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the Gavel collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on the given registerer. Tests pass
// a private registry so parallel packages never collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RowsIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "rows_ingested_total",
			Help:      "Normalized rows accepted per dataset.",
		}, []string{"dataset"}),
		IngestErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "ingest_errors_total",
			Help:      "Uploads rejected at the file level.",
		}),
		DatasetSaves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "dataset_saves_total",
			Help:      "Dataset save operations per key.",
		}, []string{"key"}),
		DatasetLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "dataset_loads_total",
			Help:      "Dataset load operations per key.",
		}, []string{"key"}),
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "store_failures_total",
			Help:      "Persistence operations that returned an error.",
		}),
		AlertsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "alerts_emitted_total",
			Help:      "Alerts produced per severity.",
		}, []string{"severity"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gavel",
			Name:      "http_requests_total",
			Help:      "HTTP requests per route and status class.",
		}, []string{"route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gavel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency per route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
