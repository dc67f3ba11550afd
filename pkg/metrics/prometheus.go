// Package metrics provides Prometheus metrics for the tipsheet service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the tipsheet service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Extraction pipeline
	tablesScanned    prometheus.Counter
	tablesQualified  prometheus.Counter
	ticketsExtracted prometheus.Counter
	ticketsDuplicate prometheus.Counter

	// Evaluation pipeline
	verdicts   *prometheus.CounterVec
	fuzzyScore prometheus.Histogram

	// Pipeline runs
	runs *prometheus.CounterVec

	// HTTP trigger
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tipsheet",
		subsystem:        "quicktips",
		histogramBuckets: prometheus.LinearBuckets(0, 10, 11), // fuzzy scores run 0-100
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.tablesScanned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tables_scanned_total",
		Help:      "Total number of HTML tables inspected by the classifier",
	})

	m.tablesQualified = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tables_qualified_total",
		Help:      "Total number of tables classified as probability tables",
	})

	m.ticketsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tickets_extracted_total",
		Help:      "Total number of tickets extracted after deduplication",
	})

	m.ticketsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tickets_duplicate_total",
		Help:      "Total number of duplicate (match, tip) rows dropped",
	})

	m.verdicts = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "verdicts_total",
			Help:      "Total number of evaluation verdicts by result",
		},
		[]string{"result"},
	)

	m.fuzzyScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fuzzy_score",
		Help:      "Histogram of best fuzzy-match scores per evaluated ticket",
		Buckets:   m.histogramBuckets,
	})

	m.runs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "pipeline_runs_total",
			Help:      "Total number of pipeline runs by pipeline and status",
		},
		[]string{"pipeline", "status"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers against the global manager.

// RecordTableScanned counts one classifier inspection.
func RecordTableScanned(qualified bool) {
	globalManager.tablesScanned.Inc()
	if qualified {
		globalManager.tablesQualified.Inc()
	}
}

// RecordTicketsExtracted counts tickets kept after deduplication.
func RecordTicketsExtracted(count int) {
	globalManager.ticketsExtracted.Add(float64(count))
}

// RecordTicketsDuplicate counts duplicate rows dropped.
func RecordTicketsDuplicate(count int) {
	globalManager.ticketsDuplicate.Add(float64(count))
}

// RecordVerdict counts one verdict by result.
func RecordVerdict(result string) {
	globalManager.verdicts.WithLabelValues(result).Inc()
}

// RecordFuzzyScore observes the best score of one ticket pairing.
func RecordFuzzyScore(score int) {
	globalManager.fuzzyScore.Observe(float64(score))
}

// RecordRun counts one pipeline run.
func RecordRun(pipeline, status string) {
	globalManager.runs.WithLabelValues(pipeline, status).Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
