// Package metrics expõe as métricas Prometheus da pipeline
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// PipelineMetrics registra execuções, linhas processadas e falhas por entidade e visão
type PipelineMetrics struct {
	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	rowsRead      *prometheus.CounterVec
	rowsKept      *prometheus.CounterVec
	rowsDropped   *prometheus.CounterVec
	entityErrors  *prometheus.CounterVec
	viewRows      *prometheus.GaugeVec
	viewErrors    *prometheus.CounterVec
	lastSuccessAt prometheus.Gauge
}

var (
	pipelineMetricsOnce sync.Once
	pipelineMetrics     *PipelineMetrics
)

// Pipeline retorna o registro singleton no registerer padrão
func Pipeline() *PipelineMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = NewPipelineMetrics(prometheus.DefaultRegisterer)
	})
	return pipelineMetrics
}

// ResetPipelineMetricsForTest limpa o singleton
func ResetPipelineMetricsForTest() {
	pipelineMetricsOnce = sync.Once{}
	pipelineMetrics = nil
}

func NewPipelineMetrics(registerer prometheus.Registerer) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &PipelineMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lakehouse_pipeline_runs_total",
			Help: "Pipeline runs by layer and status.",
		}, []string{"layer", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lakehouse_pipeline_run_duration_seconds",
			Help:    "Pipeline run duration by layer.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"layer"}),
		rowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lakehouse_silver_rows_read_total",
			Help: "Raw rows read by entity.",
		}, []string{"entity"}),
		rowsKept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lakehouse_silver_rows_kept_total",
			Help: "Canonical rows produced by entity.",
		}, []string{"entity"}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lakehouse_silver_rows_dropped_total",
			Help: "Rows dropped by entity and issue kind.",
		}, []string{"entity", "kind"}),
		entityErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lakehouse_silver_entity_errors_total",
			Help: "Fatal entity transformation failures.",
		}, []string{"entity"}),
		viewRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lakehouse_gold_view_rows",
			Help: "Rows in the last computed Gold view.",
		}, []string{"view"}),
		viewErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lakehouse_gold_view_errors_total",
			Help: "Gold view computation failures.",
		}, []string{"view"}),
		lastSuccessAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lakehouse_pipeline_last_success_timestamp_seconds",
			Help: "Unix time of the last successful pipeline run.",
		}),
	}

	registerer.MustRegister(
		m.runs,
		m.runDuration,
		m.rowsRead,
		m.rowsKept,
		m.rowsDropped,
		m.entityErrors,
		m.viewRows,
		m.viewErrors,
		m.lastSuccessAt,
	)

	return m
}

// ObserveRun registra o resultado completo de uma execução
func (m *PipelineMetrics) ObserveRun(result *domain.RunResult) {
	if m == nil || result == nil {
		return
	}

	status := StatusSuccess
	if !result.Succeeded() {
		status = StatusFailure
	}
	m.runs.WithLabelValues(string(result.Layer), status).Inc()
	m.runDuration.WithLabelValues(string(result.Layer)).Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())

	if status == StatusSuccess {
		m.lastSuccessAt.Set(float64(result.FinishedAt.Unix()))
	}

	m.observeReport(result.Silver)

	for _, view := range result.Views {
		if view.Error != "" {
			m.viewErrors.WithLabelValues(view.View).Inc()
			continue
		}
		m.viewRows.WithLabelValues(view.View).Set(float64(view.Rows))
	}
}

func (m *PipelineMetrics) observeReport(report *domain.Report) {
	if report == nil {
		return
	}

	for _, stats := range report.Entities {
		entity := string(stats.Entity)
		m.rowsRead.WithLabelValues(entity).Add(float64(stats.Read))
		m.rowsKept.WithLabelValues(entity).Add(float64(stats.Kept))
		if stats.Error != "" {
			m.entityErrors.WithLabelValues(entity).Inc()
		}
	}

	for _, issue := range report.Issues {
		m.rowsDropped.WithLabelValues(string(issue.Entity), string(issue.Kind)).Inc()
	}
}
