// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	EventsProcessed *prometheus.CounterVec
	EventsSkipped   *prometheus.CounterVec
	EventsDropped   prometheus.Counter
	EventErrors     *prometheus.CounterVec
	HandlerLatency  *prometheus.HistogramVec
	LastBlock       prometheus.Gauge

	// Archive metrics
	RecordsArchived  *prometheus.CounterVec
	ArchiveBatchSize prometheus.Histogram

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulEvent prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "pair_indexer"
	}

	return &Metrics{
		EventsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "events_processed_total",
			Help:      "Total number of events processed by type",
		}, []string{"event_type"}),
		EventsSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "events_skipped_total",
			Help:      "Total number of events skipped because a prerequisite entity was missing",
		}, []string{"event_type", "entity_kind"}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "events_dropped_total",
			Help:      "Total number of events dropped for violating (block, logIndex) ordering",
		}),
		EventErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "event_errors_total",
			Help:      "Total number of event handler failures by type",
		}, []string{"event_type"}),
		HandlerLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "handler_latency_seconds",
			Help:      "Event handler latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
		LastBlock: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "last_block",
			Help:      "Block number of the last processed event",
		}),

		RecordsArchived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "records_total",
			Help:      "Total number of finalized records sent to the archive by kind",
		}, []string{"kind"}),
		ArchiveBatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "batch_size",
			Help:      "Number of records per archive insert batch",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000},
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		LastSuccessfulEvent: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_event_timestamp",
			Help:      "Unix timestamp of the last successfully processed event",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordEventProcessed increments the processed counter for an event type.
func RecordEventProcessed(eventType string) {
	DefaultMetrics.EventsProcessed.WithLabelValues(eventType).Inc()
}

// RecordEventSkipped records a missing-prerequisite skip.
func RecordEventSkipped(eventType, entityKind string) {
	DefaultMetrics.EventsSkipped.WithLabelValues(eventType, entityKind).Inc()
}

// RecordEventDropped increments the out-of-order drop counter.
func RecordEventDropped() {
	DefaultMetrics.EventsDropped.Inc()
}

// RecordEventError records an event handler failure.
func RecordEventError(eventType string) {
	DefaultMetrics.EventErrors.WithLabelValues(eventType).Inc()
}

// ObserveHandlerLatency records handler latency for an event type.
func ObserveHandlerLatency(eventType string, seconds float64) {
	DefaultMetrics.HandlerLatency.WithLabelValues(eventType).Observe(seconds)
}

// UpdateLastBlock updates the last processed block gauge.
func UpdateLastBlock(block int64) {
	DefaultMetrics.LastBlock.Set(float64(block))
}

// RecordArchived records finalized records sent to the archive.
func RecordArchived(kind string, count int) {
	DefaultMetrics.RecordsArchived.WithLabelValues(kind).Add(float64(count))
	DefaultMetrics.ArchiveBatchSize.Observe(float64(count))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// MarkEventSuccess stamps the health gauge with the event's timestamp.
func MarkEventSuccess(timestamp int64) {
	DefaultMetrics.LastSuccessfulEvent.Set(float64(timestamp))
}
