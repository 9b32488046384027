package usecase

import (
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

// ReportBuilder accumulates the outcomes of a run into a MigrationReport.
type ReportBuilder struct {
	report    entities.MigrationReport
	overruns  map[string]entities.Room
	roomOrder []string
}

func NewReportBuilder(dryRun bool, startedAt time.Time) *ReportBuilder {
	return &ReportBuilder{
		report: entities.MigrationReport{
			DryRun:    dryRun,
			State:     entities.RunStateNotStarted,
			StartedAt: startedAt,
			Migrated:  []entities.MigratedEntry{},
			Failed:    []entities.FailedEntry{},
		},
		overruns: map[string]entities.Room{},
	}
}

func (b *ReportBuilder) SetState(s entities.RunState) { b.report.State = s }

func (b *ReportBuilder) SetSelected(n int) { b.report.TotalSelected = n }

func (b *ReportBuilder) SetApprover(id string, fallback bool) {
	b.report.ApproverID = id
	b.report.ApproverFallback = fallback
}

func (b *ReportBuilder) Warn(msg string) {
	b.report.Warnings = append(b.report.Warnings, msg)
}

// Abort records a run-level error. Outcomes recorded so far are kept.
func (b *ReportBuilder) Abort(err error) {
	b.report.RunError = err.Error()
}

// NoteRoom records the occupancy of room after a write (or a projected write
// in a dry run). The latest overrun per room becomes one warning.
func (b *ReportBuilder) NoteRoom(room entities.Room) {
	if room.Overrun() == 0 {
		return
	}
	if _, seen := b.overruns[room.ID]; !seen {
		b.roomOrder = append(b.roomOrder, room.ID)
	}
	b.overruns[room.ID] = room
}

// Record adds one per-record outcome.
func (b *ReportBuilder) Record(o entities.MigrationOutcome) {
	switch o.Kind {
	case entities.OutcomeMigrated:
		b.report.Migrated = append(b.report.Migrated, entities.MigratedEntry{LegacyID: o.LegacyID, CanonicalID: o.CanonicalID})
	case entities.OutcomePreviewed:
		entry := entities.PreviewEntry{LegacyID: o.LegacyID}
		if o.Preview != nil {
			entry.Payload = *o.Preview
		}
		b.report.Previewed = append(b.report.Previewed, entry)
	case entities.OutcomeSkipped:
		b.report.Skipped = append(b.report.Skipped, entities.SkippedEntry{LegacyID: o.LegacyID, Reason: o.Reason})
	default:
		b.report.Failed = append(b.report.Failed, entities.FailedEntry{
			LegacyID:    o.LegacyID,
			ProduceType: o.ProduceType,
			Step:        o.Step,
			Reason:      o.Reason,
			RolledBack:  o.RolledBack,
		})
	}
}

// Build returns the report. The builder may not be used afterwards.
func (b *ReportBuilder) Build(finishedAt time.Time) entities.MigrationReport {
	for _, id := range b.roomOrder {
		if msg, ok := CapacityWarning(b.overruns[id]); ok {
			if b.report.DryRun {
				msg = "projected " + msg
			}
			b.Warn(msg)
		}
	}
	b.report.FinishedAt = finishedAt
	return b.report
}
