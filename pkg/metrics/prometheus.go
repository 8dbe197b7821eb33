package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the agenda engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Calendar
	gridBuilds      prometheus.Counter
	gridBuildTime   prometheus.Histogram
	holidayBuilds   prometheus.Counter
	holidayHits     prometheus.Counter
	dayDetailBuilds prometheus.Counter

	// Event store
	storeMutations    *prometheus.CounterVec
	storeBuckets      prometheus.Gauge
	storeEvents       prometheus.Gauge
	storeSaves        prometheus.Counter
	storeSaveErrors   prometheus.Counter
	storeSaveLatency  prometheus.Histogram
	storeLoadFallback *prometheus.CounterVec

	// Save queue
	saveQueueSize          prometheus.Gauge
	saveQueueCapacity      prometheus.Gauge
	saveQueueEnqueueErrors prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	validationErrors     *prometheus.CounterVec
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "agenda",
		subsystem:        "calendar",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.gridBuilds = m.counter("grid_builds_total", "Total number of month grids built")
	m.gridBuildTime = m.histogram("grid_build_duration_milliseconds", "Month grid build duration in milliseconds", m.histogramBuckets)
	m.holidayBuilds = m.counter("holiday_builds_total", "Total number of yearly holiday maps generated")
	m.holidayHits = m.counter("holiday_cache_hits_total", "Holiday map lookups served from cache")
	m.dayDetailBuilds = m.counter("day_detail_builds_total", "Total number of day detail lists built")

	m.storeMutations = m.counterVec("store_mutations_total", "Event store mutations by operation", "op")
	m.storeBuckets = m.gauge("store_buckets", "Number of non-empty date buckets")
	m.storeEvents = m.gauge("store_events", "Number of stored user events")
	m.storeSaves = m.counter("store_saves_total", "Total number of successful saves")
	m.storeSaveErrors = m.counter("store_save_errors_total", "Total number of failed saves")
	m.storeSaveLatency = m.histogram("store_save_latency_milliseconds", "Save latency in milliseconds", m.histogramBuckets)
	m.storeLoadFallback = m.counterVec("store_load_fallback_total", "Loads that fell back to an empty store", "reason")

	m.saveQueueSize = m.gauge("save_queue_size", "Pending save jobs")
	m.saveQueueCapacity = m.gauge("save_queue_capacity", "Maximum pending save jobs")
	m.saveQueueEnqueueErrors = m.counter("save_queue_enqueue_errors_total", "Save jobs rejected by the queue")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.validationErrors = m.counterVec("validation_errors_total", "Rejected event submissions by field", "field")
	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Total number of errors by type", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of operations that resulted in errors", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordGridBuild counts a month grid build and its duration.
func RecordGridBuild(durationMs float64) {
	globalManager.gridBuilds.Inc()
	globalManager.gridBuildTime.Observe(durationMs)
}

// RecordHolidayBuild counts a holiday map generation.
func RecordHolidayBuild() {
	globalManager.holidayBuilds.Inc()
}

// RecordHolidayCacheHit counts a holiday map served from cache.
func RecordHolidayCacheHit() {
	globalManager.holidayHits.Inc()
}

// RecordDayDetailBuild counts a day detail build.
func RecordDayDetailBuild() {
	globalManager.dayDetailBuilds.Inc()
}

// RecordStoreMutation counts a store mutation ("upsert", "remove").
func RecordStoreMutation(op string) {
	globalManager.storeMutations.WithLabelValues(op).Inc()
}

// UpdateStoreBuckets sets the number of non-empty buckets.
func UpdateStoreBuckets(n int) {
	globalManager.storeBuckets.Set(float64(n))
}

// UpdateStoreEvents sets the number of stored events.
func UpdateStoreEvents(n int) {
	globalManager.storeEvents.Set(float64(n))
}

// RecordStoreSave records a successful save and its latency.
func RecordStoreSave(latencyMs float64) {
	globalManager.storeSaves.Inc()
	globalManager.storeSaveLatency.Observe(latencyMs)
}

// RecordStoreSaveError counts a failed save.
func RecordStoreSaveError() {
	globalManager.storeSaveErrors.Inc()
}

// RecordStoreLoadFallback counts a load that produced an empty store.
func RecordStoreLoadFallback(reason string) {
	globalManager.storeLoadFallback.WithLabelValues(reason).Inc()
}

// UpdateSaveQueueSize sets the pending save job count.
func UpdateSaveQueueSize(size int) {
	globalManager.saveQueueSize.Set(float64(size))
}

// UpdateSaveQueueCapacity sets the save queue capacity.
func UpdateSaveQueueCapacity(capacity int) {
	globalManager.saveQueueCapacity.Set(float64(capacity))
}

// RecordSaveQueueEnqueueError counts a rejected save job.
func RecordSaveQueueEnqueueError() {
	globalManager.saveQueueEnqueueErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordValidationError counts a rejected submission for field.
func RecordValidationError(field string) {
	globalManager.validationErrors.WithLabelValues(field).Inc()
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
