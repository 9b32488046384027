// Package metrics exposes migration run results as Prometheus metrics.
//
// The engine runs once and exits, so metrics are written to a node_exporter
// textfile instead of being served.
package metrics

import (
	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stayfresh_migration"

// MigrationMetrics holds the metrics of one migration run.
type MigrationMetrics struct {
	registry *prometheus.Registry

	records     *prometheus.GaugeVec
	selected    *prometheus.GaugeVec
	warnings    *prometheus.GaugeVec
	duration    *prometheus.GaugeVec
	lastRun     *prometheus.GaugeVec
	runFailures *prometheus.GaugeVec
}

// NewMigrationMetrics creates and registers the run metrics on registry.
func NewMigrationMetrics(registry *prometheus.Registry) (*MigrationMetrics, error) {
	modeLabel := []string{"mode"}
	m := &MigrationMetrics{
		registry: registry,
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Legacy records per outcome in the last run",
		}, []string{"mode", "outcome"}),
		selected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_records",
			Help:      "Legacy records selected by the last run",
		}, modeLabel),
		warnings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "warnings",
			Help:      "Warnings raised by the last run",
		}, modeLabel),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Wall time of the last run",
		}, modeLabel),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}, modeLabel),
		runFailures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_aborted",
			Help:      "1 when the last run aborted on a run-level error",
		}, modeLabel),
	}

	for _, c := range []prometheus.Collector{m.records, m.selected, m.warnings, m.duration, m.lastRun, m.runFailures} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveReport records the results of a finished run.
func (m *MigrationMetrics) ObserveReport(r entities.MigrationReport) {
	mode := "commit"
	if r.DryRun {
		mode = "dry_run"
	}

	m.records.WithLabelValues(mode, string(entities.OutcomeMigrated)).Set(float64(len(r.Migrated)))
	m.records.WithLabelValues(mode, string(entities.OutcomePreviewed)).Set(float64(len(r.Previewed)))
	m.records.WithLabelValues(mode, string(entities.OutcomeFailed)).Set(float64(len(r.Failed)))
	m.records.WithLabelValues(mode, string(entities.OutcomeSkipped)).Set(float64(len(r.Skipped)))
	m.selected.WithLabelValues(mode).Set(float64(r.TotalSelected))
	m.warnings.WithLabelValues(mode).Set(float64(len(r.Warnings)))

	if !r.FinishedAt.IsZero() {
		m.duration.WithLabelValues(mode).Set(r.FinishedAt.Sub(r.StartedAt).Seconds())
		m.lastRun.WithLabelValues(mode).Set(float64(r.FinishedAt.Unix()))
	}

	aborted := 0.0
	if r.RunError != "" {
		aborted = 1
	}
	m.runFailures.WithLabelValues(mode).Set(aborted)
}

// WriteTextfile writes every registered metric to path in the text format.
func (m *MigrationMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
