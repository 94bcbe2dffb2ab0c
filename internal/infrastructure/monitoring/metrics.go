package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry so
// servers and tests can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec
	ServiceErrors   *prometheus.CounterVec

	// Integration metrics
	Integrations    *prometheus.CounterVec
	Evaluations     *prometheus.HistogramVec
	IntegrationTime *prometheus.HistogramVec
	RuntimesInUse   prometheus.Gauge
	BatchJobs       *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
	stop      chan struct{}
	stopOnce  sync.Once

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests      int64   `json:"total_requests"`
	TotalErrors        int64   `json:"total_errors"`
	TotalDuration      float64 `json:"total_duration_seconds"`
	RequestCount       int64   `json:"request_count"`
	Integrations       int64   `json:"integrations"`
	FailedIntegrations int64   `json:"failed_integrations"`
	Evaluations        int64   `json:"evaluations"`
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),
		stop:      make(chan struct{}),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "integrator_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "integrator_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "integrator_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "integrator_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Service metrics
		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "integrator_service_calls_total",
				Help: "Total number of service calls",
			},
			[]string{"service", "method", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "integrator_service_duration_seconds",
				Help:    "Service call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"service", "method"},
		),
		ServiceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "integrator_service_errors_total",
				Help: "Total number of service errors",
			},
			[]string{"service", "method", "error_type"},
		),

		// Integration metrics
		Integrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "integrator_integrations_total",
				Help: "Total number of integrations by method and outcome",
			},
			[]string{"method", "status"},
		),
		Evaluations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "integrator_integrand_evaluations",
				Help:    "Integrand evaluations per integration",
				Buckets: prometheus.ExponentialBuckets(4, 4, 12),
			},
			[]string{"method"},
		),
		IntegrationTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "integrator_integration_duration_seconds",
				Help:    "Integration wall time in seconds",
				Buckets: []float64{.0001, .001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
			},
			[]string{"method"},
		),
		RuntimesInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "integrator_expression_runtimes_in_use",
				Help: "Number of expression runtimes currently bound to an integration",
			},
		),
		BatchJobs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "integrator_batch_jobs_total",
				Help: "Total number of batch jobs by outcome",
			},
			[]string{"status"},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "integrator_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime updates the uptime metric until Close
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Uptime.Set(time.Since(m.startTime).Seconds())
		case <-m.stop:
			return
		}
	}
}

// Close stops background updates
func (m *Metrics) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordServiceCall records a service call
func (m *Metrics) RecordServiceCall(service, method, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, method, status).Inc()
	m.ServiceDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordServiceError records a service error
func (m *Metrics) RecordServiceError(service, method, errorType string) {
	m.ServiceErrors.WithLabelValues(service, method, errorType).Inc()
}

// RecordIntegration records one finished integration
func (m *Metrics) RecordIntegration(method string, evaluations int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Integrations.WithLabelValues(method, status).Inc()
	m.Evaluations.WithLabelValues(method).Observe(float64(evaluations))
	m.IntegrationTime.WithLabelValues(method).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Integrations++
	m.snapshot.Evaluations += int64(evaluations)
	if err != nil {
		m.snapshot.FailedIntegrations++
	}
	m.mu.Unlock()
}

// RecordBatchJob records the outcome of one batch job
func (m *Metrics) RecordBatchJob(ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.BatchJobs.WithLabelValues(status).Inc()
}

// SetRuntimesInUse sets the number of busy expression runtimes
func (m *Metrics) SetRuntimesInUse(count int) {
	m.RuntimesInUse.Set(float64(count))
}

// Snapshot returns the current JSON-friendly counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// UptimeDuration returns the time since the collector was created
func (m *Metrics) UptimeDuration() time.Duration {
	return time.Since(m.startTime)
}
