// Package metrics provides Prometheus metrics for the event status service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Status checks
	statusChecks       *prometheus.CounterVec
	statusCheckLatency prometheus.Histogram

	// Last-event loader
	loaderLatency prometheus.Histogram
	loaderErrors  prometheus.Counter

	// Event recording
	eventsRecorded prometheus.Counter

	// Repository
	repositoryGroupsTotal  prometheus.Gauge
	repositoryQueryLatency prometheus.Histogram
	repositorySaveLatency  prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager and the custom registry it is registered on.
var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // singleton metrics manager
	customRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // metrics registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry and returns that registry. Call it before serving /metrics:
// handlers built earlier keep exporting the previous registry.
func Configure(opts ...Option) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry.Store(registry)
	globalManager.Store(m)
	return registry
}

func current() *Manager {
	return globalManager.Load()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "evstatus",
		subsystem:        "checker",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.statusChecks = auto.NewCounterVec(
		m.counterOpts("status_checks_total", "Total number of status checks by resulting status"),
		[]string{"status"},
	)
	m.statusCheckLatency = auto.NewHistogram(
		m.histogramOpts("status_check_latency_milliseconds", "Latency of complete status checks in milliseconds", m.histogramBuckets),
	)

	m.loaderLatency = auto.NewHistogram(
		m.histogramOpts("loader_latency_milliseconds", "Latency of last-event lookups in milliseconds", m.histogramBuckets),
	)
	m.loaderErrors = auto.NewCounter(
		m.counterOpts("loader_errors_total", "Total number of failed last-event lookups"),
	)

	m.eventsRecorded = auto.NewCounter(
		m.counterOpts("events_recorded_total", "Total number of events recorded"),
	)

	m.repositoryGroupsTotal = auto.NewGauge(
		m.gaugeOpts("repository_groups_total", "Number of groups that have a last event"),
	)
	m.repositoryQueryLatency = auto.NewHistogram(
		m.histogramOpts("repository_query_latency_milliseconds", "Latency of repository reads in milliseconds", m.histogramBuckets),
	)
	m.repositorySaveLatency = auto.NewHistogram(
		m.histogramOpts("repository_save_latency_milliseconds", "Latency of repository writes in milliseconds", m.histogramBuckets),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordStatusCheck counts a completed status check by its outcome.
func RecordStatusCheck(status string) {
	current().statusChecks.WithLabelValues(status).Inc()
}

// RecordStatusCheckLatency records end-to-end status check latency in milliseconds.
func RecordStatusCheckLatency(latencyMs float64) {
	current().statusCheckLatency.Observe(latencyMs)
}

// RecordLoaderLatency records last-event lookup latency in milliseconds.
func RecordLoaderLatency(latencyMs float64) {
	current().loaderLatency.Observe(latencyMs)
}

// RecordLoaderError increments the failed lookup counter.
func RecordLoaderError() {
	current().loaderErrors.Inc()
}

// RecordEventRecorded increments the recorded events counter.
func RecordEventRecorded() {
	current().eventsRecorded.Inc()
}

// UpdateRepositoryGroupsTotal sets the number of groups with a stored event.
func UpdateRepositoryGroupsTotal(count int) {
	current().repositoryGroupsTotal.Set(float64(count))
}

// RecordRepositoryQueryLatency records repository read latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	current().repositoryQueryLatency.Observe(latencyMs)
}

// RecordRepositorySaveLatency records repository write latency.
func RecordRepositorySaveLatency(latencyMs float64) {
	current().repositorySaveLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	current().errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	current().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	current().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	current().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry.Load()
}
