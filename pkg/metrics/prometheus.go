// Package metrics provides Prometheus metrics for the paysheet report runs.
package metrics

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for a paysheet run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          atomic.Bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Ingestion Metrics
	filesParsed   prometheus.Counter
	recordsParsed prometheus.Counter
	rowsSkipped   prometheus.Counter
	parseErrors   *prometheus.CounterVec
	parseLatency  prometheus.Histogram

	// Report Metrics
	reportLatency     *prometheus.HistogramVec
	reportDepartments prometheus.Gauge
	reportPayoutTotal prometheus.Gauge
	runRecords        prometheus.Gauge
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
		namespace:        "paysheet",
		subsystem:        "",
		histogramBuckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	m.enabled.Store(true)

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.filesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("files_parsed_total"),
		Help:        "Total number of input files parsed successfully",
		ConstLabels: labels,
	})

	m.recordsParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("records_parsed_total"),
		Help:        "Total number of employee records produced by the parser",
		ConstLabels: labels,
	})

	m.rowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rows_skipped_total"),
		Help:        "Total number of data rows skipped for a field count mismatch",
		ConstLabels: labels,
	})

	m.parseErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("parse_errors_total"),
			Help:        "Total number of files rejected by the parser, by error kind",
			ConstLabels: labels,
		},
		[]string{"kind"},
	)

	m.parseLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("parse_latency_milliseconds"),
		Help:        "Histogram of per-file parse latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.reportLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("report_latency_milliseconds"),
			Help:        "Histogram of report generation latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"report"},
	)

	m.reportDepartments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("report_departments"),
		Help:        "Number of department buckets in the last generated report",
		ConstLabels: labels,
	})

	m.reportPayoutTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("report_payout_total"),
		Help:        "Grand total payout of the last generated report",
		ConstLabels: labels,
	})

	m.runRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("run_records"),
		Help:        "Number of records combined across all input files in the last run",
		ConstLabels: labels,
	})
}

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled.Store(enabled)
}

// Enabled reports whether the global manager records observations.
func Enabled() bool {
	return globalManager.enabled.Load()
}

// RecordFileParsed increments the parsed files counter.
func RecordFileParsed() {
	if !Enabled() {
		return
	}
	globalManager.filesParsed.Inc()
}

// RecordRecordsParsed adds n to the parsed records counter.
func RecordRecordsParsed(n int) {
	if !Enabled() || n <= 0 {
		return
	}
	globalManager.recordsParsed.Add(float64(n))
}

// RecordRowsSkipped adds n to the skipped rows counter.
func RecordRowsSkipped(n int) {
	if !Enabled() || n <= 0 {
		return
	}
	globalManager.rowsSkipped.Add(float64(n))
}

// RecordParseError records a rejected file with the given error kind label.
func RecordParseError(kind string) {
	if !Enabled() {
		return
	}
	globalManager.parseErrors.WithLabelValues(kind).Inc()
}

// RecordParseLatency records per-file parse latency.
func RecordParseLatency(latencyMs float64) {
	if !Enabled() {
		return
	}
	globalManager.parseLatency.Observe(latencyMs)
}

// RecordReportLatency records report generation latency for the named report.
func RecordReportLatency(report string, latencyMs float64) {
	if !Enabled() {
		return
	}
	globalManager.reportLatency.WithLabelValues(report).Observe(latencyMs)
}

// UpdateReportDepartments sets the department bucket count of the last report.
func UpdateReportDepartments(count int) {
	if !Enabled() {
		return
	}
	globalManager.reportDepartments.Set(float64(count))
}

// UpdateReportPayoutTotal sets the grand total of the last report.
func UpdateReportPayoutTotal(total float64) {
	if !Enabled() {
		return
	}
	globalManager.reportPayoutTotal.Set(total)
}

// UpdateRunRecords sets the combined record count of the current run.
func UpdateRunRecords(count int) {
	if !Enabled() {
		return
	}
	globalManager.runRecords.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current registry contents to path in the text
// exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
