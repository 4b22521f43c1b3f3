// Package metrics provides Prometheus metrics for the pitwall analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Component labels for analytics metrics.
const (
	ComponentConsistency = "consistency"
	ComponentLostTime    = "lost_time"
	ComponentStints      = "stints"
	ComponentPerformance = "performance"
	ComponentLaps        = "laps"
	ComponentSectors     = "sectors"
	ComponentPitStops    = "pit_stops"
	ComponentReport      = "report"
)

// Manager holds every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Analytics
	computations       *prometheus.CounterVec
	computationLatency *prometheus.HistogramVec

	// Dataset
	datasetLaps     prometheus.Gauge
	datasetPitStops prometheus.Gauge
	datasetEvents   prometheus.Gauge
	datasetLoaded   prometheus.Gauge
	reloads         *prometheus.CounterVec
	loadLatency     prometheus.Histogram

	// Report workers
	workerJobs       *prometheus.CounterVec
	workerJobLatency prometheus.Histogram
	workerActive     prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitwall",
		subsystem:        "analytics",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
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

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.computations = m.counterVec("computations_total",
		"Total number of analytics computations by component and outcome", "component", "outcome")
	m.computationLatency = auto.NewHistogramVec(m.histogramOpts("computation_latency_milliseconds",
		"Latency of analytics computations in milliseconds"), []string{"component"})

	m.datasetLaps = m.gauge("dataset_laps", "Number of lap records currently loaded")
	m.datasetPitStops = m.gauge("dataset_pit_stops", "Number of pit stop records currently loaded")
	m.datasetEvents = m.gauge("dataset_events", "Number of race events currently loaded")
	m.datasetLoaded = m.gauge("dataset_loaded_timestamp_seconds", "Unix time of the last successful dataset load")
	m.reloads = m.counterVec("dataset_reloads_total", "Dataset reload attempts by outcome", "outcome")
	m.loadLatency = auto.NewHistogram(m.histogramOpts("dataset_load_latency_milliseconds",
		"Latency of dataset loads in milliseconds"))

	m.workerJobs = m.counterVec("worker_jobs_total", "Report jobs run by the worker pool by outcome", "outcome")
	m.workerJobLatency = auto.NewHistogram(m.histogramOpts("worker_job_latency_milliseconds",
		"Latency of report jobs in milliseconds"))
	m.workerActive = m.gauge("worker_active", "Report workers currently running a job")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})
	m.httpErrors = m.counterVec("http_errors_total",
		"HTTP responses with an error status by endpoint and code", "endpoint", "code")
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordComputation records one analytics computation of a component.
func RecordComputation(component string, latencyMs float64, err error) {
	globalManager.computations.WithLabelValues(component, outcome(err)).Inc()
	globalManager.computationLatency.WithLabelValues(component).Observe(latencyMs)
}

// UpdateDataset sets the dataset size gauges after a load.
func UpdateDataset(laps, pitStops, events int, loadedUnix int64) {
	globalManager.datasetLaps.Set(float64(laps))
	globalManager.datasetPitStops.Set(float64(pitStops))
	globalManager.datasetEvents.Set(float64(events))
	globalManager.datasetLoaded.Set(float64(loadedUnix))
}

// RecordReload records a dataset reload attempt.
func RecordReload(latencyMs float64, err error) {
	globalManager.reloads.WithLabelValues(outcome(err)).Inc()
	globalManager.loadLatency.Observe(latencyMs)
}

// RecordWorkerJob records a finished report job.
func RecordWorkerJob(latencyMs float64, err error) {
	globalManager.workerJobs.WithLabelValues(outcome(err)).Inc()
	globalManager.workerJobLatency.Observe(latencyMs)
}

// AddWorkerActive adjusts the active worker gauge by delta.
func AddWorkerActive(delta int) {
	globalManager.workerActive.Add(float64(delta))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an error response with its error code.
func RecordHTTPError(endpoint, code string) {
	globalManager.httpErrors.WithLabelValues(endpoint, code).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors to the
// custom registry. Call once per process.
func RegisterRuntimeCollectors() {
	customRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}
