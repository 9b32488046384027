package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReport(t *testing.T) {
	m, err := NewMigrationMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	started := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	m.ObserveReport(entities.MigrationReport{
		StartedAt:     started,
		FinishedAt:    started.Add(1500 * time.Millisecond),
		TotalSelected: 4,
		Migrated:      []entities.MigratedEntry{{LegacyID: "a"}, {LegacyID: "b"}},
		Failed:        []entities.FailedEntry{{LegacyID: "c"}},
		Skipped:       []entities.SkippedEntry{{LegacyID: "d"}},
		Warnings:      []string{"room over capacity"},
	})

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"migrated", testutil.ToFloat64(m.records.WithLabelValues("commit", "migrated")), 2},
		{"failed", testutil.ToFloat64(m.records.WithLabelValues("commit", "failed")), 1},
		{"skipped", testutil.ToFloat64(m.records.WithLabelValues("commit", "skipped")), 1},
		{"selected", testutil.ToFloat64(m.selected.WithLabelValues("commit")), 4},
		{"warnings", testutil.ToFloat64(m.warnings.WithLabelValues("commit")), 1},
		{"duration", testutil.ToFloat64(m.duration.WithLabelValues("commit")), 1.5},
		{"aborted", testutil.ToFloat64(m.runFailures.WithLabelValues("commit")), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, tc.got)
			}
		})
	}
}

func TestObserveReport_DryRunAbort(t *testing.T) {
	m, err := NewMigrationMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m.ObserveReport(entities.MigrationReport{DryRun: true, RunError: "selection failed"})

	if got := testutil.ToFloat64(m.runFailures.WithLabelValues("dry_run")); got != 1 {
		t.Fatalf("expected aborted=1, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m, err := NewMigrationMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m.ObserveReport(entities.MigrationReport{TotalSelected: 1, Migrated: []entities.MigratedEntry{{LegacyID: "a"}}})

	path := filepath.Join(t.TempDir(), "migration.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(raw), `stayfresh_migration_records{mode="commit",outcome="migrated"} 1`) {
		t.Fatalf("unexpected textfile:\n%s", raw)
	}
}
