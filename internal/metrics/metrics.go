package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalMetrics *Metrics
	globalMu      sync.RWMutex
)

// Metrics holds all Prometheus metrics for Planweave
type Metrics struct {
	// Export pipeline
	ExportsTotal          *prometheus.CounterVec
	ExportsFailedTotal    *prometheus.CounterVec
	ExportDurationSeconds *prometheus.HistogramVec
	ExportBatchesTotal    prometheus.Counter

	// Document and drafts
	MutationsTotal     *prometheus.CounterVec
	MutationsNoopTotal *prometheus.CounterVec
	DraftSavesTotal    prometheus.Counter
	DraftLoadsTotal    prometheus.Counter
	DraftDeletesTotal  prometheus.Counter
	DraftsCount        prometheus.Gauge

	// Persistence
	MirrorWritesTotal prometheus.Counter
	MirrorErrorsTotal prometheus.Counter

	// API metrics
	APIRequestsTotal          *prometheus.CounterVec
	APIRequestDurationSeconds *prometheus.HistogramVec
	APIErrorsTotal            *prometheus.CounterVec

	// System metrics
	UptimeSeconds    prometheus.Gauge
	Goroutines       prometheus.Gauge
	StorageUsedBytes prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		// Export pipeline
		ExportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planweave_exports_total",
				Help: "Total number of region export attempts",
			},
			[]string{"region"},
		),
		ExportsFailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planweave_exports_failed_total",
				Help: "Total number of failed region exports",
			},
			[]string{"region", "step"},
		),
		ExportDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planweave_export_duration_seconds",
				Help:    "Region export duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"region"},
		),
		ExportBatchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planweave_export_batches_total",
				Help: "Total number of full-document export batches",
			},
		),

		// Document and drafts
		MutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planweave_mutations_total",
				Help: "Total number of applied document mutations",
			},
			[]string{"op"},
		),
		MutationsNoopTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planweave_mutations_noop_total",
				Help: "Total number of mutations that changed nothing",
			},
			[]string{"op"},
		),
		DraftSavesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planweave_draft_saves_total",
				Help: "Total number of saved drafts",
			},
		),
		DraftLoadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planweave_draft_loads_total",
				Help: "Total number of drafts loaded into the working document",
			},
		),
		DraftDeletesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planweave_draft_deletes_total",
				Help: "Total number of deleted drafts",
			},
		),
		DraftsCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "planweave_drafts_count",
				Help: "Number of stored drafts",
			},
		),

		// Persistence
		MirrorWritesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planweave_mirror_writes_total",
				Help: "Total number of debounced working-state writes",
			},
		),
		MirrorErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planweave_mirror_errors_total",
				Help: "Total number of failed working-state writes",
			},
		),

		// API metrics
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planweave_api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planweave_api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		APIErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planweave_api_errors_total",
				Help: "Total number of API errors",
			},
			[]string{"error_type"},
		),

		// System metrics
		UptimeSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "planweave_uptime_seconds",
				Help: "Server uptime in seconds",
			},
		),
		Goroutines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "planweave_goroutines",
				Help: "Number of active goroutines",
			},
		),
		StorageUsedBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "planweave_storage_used_bytes",
				Help: "BoltDB file size in bytes",
			},
		),

		registry: reg,
	}

	// Register all metrics
	reg.MustRegister(
		m.ExportsTotal,
		m.ExportsFailedTotal,
		m.ExportDurationSeconds,
		m.ExportBatchesTotal,
		m.MutationsTotal,
		m.MutationsNoopTotal,
		m.DraftSavesTotal,
		m.DraftLoadsTotal,
		m.DraftDeletesTotal,
		m.DraftsCount,
		m.MirrorWritesTotal,
		m.MirrorErrorsTotal,
		m.APIRequestsTotal,
		m.APIRequestDurationSeconds,
		m.APIErrorsTotal,
		m.UptimeSeconds,
		m.Goroutines,
		m.StorageUsedBytes,
	)

	return m
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetGlobal sets the global metrics instance
func SetGlobal(m *Metrics) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMetrics = m
}

// Global returns the global metrics instance
func Global() *Metrics {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}

// IncExport records a region export attempt
func IncExport(region string) {
	m := Global()
	if m != nil {
		m.ExportsTotal.WithLabelValues(region).Inc()
	}
}

// IncExportFailed records a failed region export
func IncExportFailed(region, step string) {
	m := Global()
	if m != nil {
		m.ExportsFailedTotal.WithLabelValues(region, step).Inc()
	}
}

// ObserveExportDuration records an export's duration
func ObserveExportDuration(region string, seconds float64) {
	m := Global()
	if m != nil {
		m.ExportDurationSeconds.WithLabelValues(region).Observe(seconds)
	}
}

// IncExportBatch records a full-document export batch
func IncExportBatch() {
	m := Global()
	if m != nil {
		m.ExportBatchesTotal.Inc()
	}
}

// IncMutation records a document mutation; applied says whether it
// changed anything.
func IncMutation(op string, applied bool) {
	m := Global()
	if m == nil {
		return
	}
	if applied {
		m.MutationsTotal.WithLabelValues(op).Inc()
	} else {
		m.MutationsNoopTotal.WithLabelValues(op).Inc()
	}
}

// IncDraftSave increments the saved draft counter
func IncDraftSave() {
	m := Global()
	if m != nil {
		m.DraftSavesTotal.Inc()
	}
}

// IncDraftLoad increments the loaded draft counter
func IncDraftLoad() {
	m := Global()
	if m != nil {
		m.DraftLoadsTotal.Inc()
	}
}

// IncDraftDelete increments the deleted draft counter
func IncDraftDelete() {
	m := Global()
	if m != nil {
		m.DraftDeletesTotal.Inc()
	}
}

// SetDraftsCount sets the stored drafts gauge
func SetDraftsCount(n int) {
	m := Global()
	if m != nil {
		m.DraftsCount.Set(float64(n))
	}
}

// IncMirrorWrite increments the working-state write counter
func IncMirrorWrite() {
	m := Global()
	if m != nil {
		m.MirrorWritesTotal.Inc()
	}
}

// IncMirrorError increments the failed working-state write counter
func IncMirrorError() {
	m := Global()
	if m != nil {
		m.MirrorErrorsTotal.Inc()
	}
}

// IncAPIErrors increments API error counter
func IncAPIErrors(errorType string) {
	m := Global()
	if m != nil {
		m.APIErrorsTotal.WithLabelValues(errorType).Inc()
	}
}
