// Package metrics provides Prometheus metrics for the quest boost claims service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Resolver metrics - the one question this service answers
	resolverLookups        prometheus.Counter
	resolverResults        prometheus.Histogram
	resolverRecordsDropped prometheus.Counter
	resolverQueryErrors    prometheus.Counter
	resolverLatency        prometheus.Histogram

	// Store metrics
	storeQueryLatency *prometheus.HistogramVec
	storePingFailures prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "questboost",
		subsystem:        "claims",
		histogramBuckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.resolverLookups = auto.NewCounter(m.counterOpts(
		"resolver_lookups_total",
		"Total number of pending-claims lookups"))

	m.resolverResults = auto.NewHistogram(m.histogramOpts(
		"resolver_results",
		"Number of pending wins returned per lookup",
		[]float64{0, 1, 2, 5, 10, 25, 50, 100}))

	m.resolverRecordsDropped = auto.NewCounter(m.counterOpts(
		"resolver_records_dropped_total",
		"Win records skipped because they could not be decoded"))

	m.resolverQueryErrors = auto.NewCounter(m.counterOpts(
		"resolver_query_errors_total",
		"Lookups that failed because the store was unavailable or rejected the query"))

	m.resolverLatency = auto.NewHistogram(m.histogramOpts(
		"resolver_latency_milliseconds",
		"End-to-end lookup latency including cursor drain",
		m.histogramBuckets))

	m.storeQueryLatency = auto.NewHistogramVec(m.histogramOpts(
		"store_query_latency_milliseconds",
		"Latency of the store round trip by query mode",
		m.histogramBuckets),
		[]string{"mode"})

	m.storePingFailures = auto.NewCounter(m.counterOpts(
		"store_ping_failures_total",
		"Readiness checks that could not reach the store"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds",
		"HTTP request duration in milliseconds",
		m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts(
		"errors_by_component_total",
		"Errors by component and type"),
		[]string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total",
		"Errors by type and severity"),
		[]string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total",
		"Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds",
		"Latency of operations that resulted in errors",
		m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes",
		"System memory usage in bytes"))

	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count",
		"Number of goroutines"))

	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordResolverLookup records one finished lookup with its result size and latency.
func RecordResolverLookup(results int, latencyMs float64) {
	globalManager.resolverLookups.Inc()
	globalManager.resolverResults.Observe(float64(results))
	globalManager.resolverLatency.Observe(latencyMs)
}

// RecordResolverRecordDropped increments the dropped record counter.
func RecordResolverRecordDropped() {
	globalManager.resolverRecordsDropped.Inc()
}

// RecordResolverQueryError increments the query error counter.
func RecordResolverQueryError() {
	globalManager.resolverQueryErrors.Inc()
}

// RecordStoreQueryLatency records the store round trip for the given query mode.
func RecordStoreQueryLatency(mode string, latencyMs float64) {
	globalManager.storeQueryLatency.WithLabelValues(mode).Observe(latencyMs)
}

// RecordStorePingFailure increments the failed readiness check counter.
func RecordStorePingFailure() {
	globalManager.storePingFailures.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
