package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.SummaryVec
	ResponseSize    *prometheus.SummaryVec

	// Node operation metrics
	OpCalls    *prometheus.CounterVec
	OpDuration *prometheus.HistogramVec
	OpErrors   *prometheus.CounterVec

	// Batch metrics
	BatchRuns     *prometheus.CounterVec
	BatchItems    *prometheus.CounterVec
	BatchFailures *prometheus.CounterVec
	BatchDuration *prometheus.HistogramVec
	BatchInFlight prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON status endpoints - tracks current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for JSON status endpoints.
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	TotalOperations   int64   `json:"total_operations"`
	FailedOperations  int64   `json:"failed_operations"`
	ActiveConnections int64   `json:"active_connections"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector on the default registry.
func NewMetrics() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// New creates a metrics collector registered against reg. Tests pass a
// fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowfs_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flowfs_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "flowfs_http_request_size_bytes",
				Help: "HTTP request size in bytes",
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "flowfs_http_response_size_bytes",
				Help: "HTTP response size in bytes",
			},
			[]string{"method", "path"},
		),

		OpCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowfs_op_calls_total",
				Help: "Total number of node operation calls",
			},
			[]string{"tool", "status"},
		),
		OpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flowfs_op_duration_seconds",
				Help:    "Node operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"tool"},
		),
		OpErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowfs_op_errors_total",
				Help: "Total number of failed node operations",
			},
			[]string{"tool"},
		),

		BatchRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowfs_batch_runs_total",
				Help: "Total number of batch runs",
			},
			[]string{"tool"},
		),
		BatchItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowfs_batch_items_total",
				Help: "Total number of batch items processed",
			},
			[]string{"tool"},
		),
		BatchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowfs_batch_item_failures_total",
				Help: "Total number of failed batch items",
			},
			[]string{"tool"},
		),
		BatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flowfs_batch_duration_seconds",
				Help:    "Batch run duration in seconds",
				Buckets: []float64{.001, .01, .05, .1, .5, 1, 5, 10, 30, 60},
			},
			[]string{"tool"},
		),
		BatchInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flowfs_batch_in_flight",
				Help: "Number of batch runs currently executing",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flowfs_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowfs_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flowfs_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric.
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOperation records one node operation call.
func (m *Metrics) RecordOperation(toolID, status string, duration time.Duration) {
	m.OpCalls.WithLabelValues(toolID, status).Inc()
	m.OpDuration.WithLabelValues(toolID).Observe(duration.Seconds())
	if status != "success" {
		m.OpErrors.WithLabelValues(toolID).Inc()
	}

	m.mu.Lock()
	m.snapshot.TotalOperations++
	if status != "success" {
		m.snapshot.FailedOperations++
	}
	m.mu.Unlock()
}

// RecordBatchRun records one finished batch run.
func (m *Metrics) RecordBatchRun(toolID string, items, failures int, duration time.Duration) {
	m.BatchRuns.WithLabelValues(toolID).Inc()
	m.BatchItems.WithLabelValues(toolID).Add(float64(items))
	m.BatchFailures.WithLabelValues(toolID).Add(float64(failures))
	m.BatchDuration.WithLabelValues(toolID).Observe(duration.Seconds())
}

// IncBatchInFlight marks a batch run as started.
func (m *Metrics) IncBatchInFlight() {
	m.BatchInFlight.Inc()
}

// DecBatchInFlight marks a batch run as finished.
func (m *Metrics) DecBatchInFlight() {
	m.BatchInFlight.Dec()
}

// IncWSConnections increments the WebSocket connection gauge.
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements the WebSocket connection gauge.
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// RecordWSMessage records one WebSocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// GetSnapshot returns current values for JSON status endpoints.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
