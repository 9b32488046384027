package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

func TestReportBuilder(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("records every outcome kind", func(t *testing.T) {
		b := NewReportBuilder(false, start)
		b.SetSelected(4)
		b.Record(entities.MigrationOutcome{LegacyID: "a", Kind: entities.OutcomeMigrated, CanonicalID: "c-a"})
		b.Record(entities.MigrationOutcome{LegacyID: "b", ProduceType: "tomatoe", Kind: entities.OutcomeFailed, Step: entities.StepValidate, Reason: "bad"})
		b.Record(entities.MigrationOutcome{LegacyID: "c", Kind: entities.OutcomeSkipped, Reason: "claimed"})
		b.Record(entities.MigrationOutcome{LegacyID: "d", Kind: entities.OutcomeFailed, Step: entities.StepOccupancy, Reason: "x", RolledBack: true})

		r := b.Build(start.Add(time.Minute))
		if r.TotalSelected != 4 || len(r.Migrated) != 1 || len(r.Failed) != 2 || len(r.Skipped) != 1 {
			t.Fatalf("unexpected report: %+v", r)
		}
		if r.Migrated[0] != (entities.MigratedEntry{LegacyID: "a", CanonicalID: "c-a"}) {
			t.Fatalf("unexpected migrated entry: %+v", r.Migrated[0])
		}
		if r.Failed[0].ProduceType != "tomatoe" || r.Failed[0].Step != entities.StepValidate {
			t.Fatalf("unexpected failed entry: %+v", r.Failed[0])
		}
		if !r.Failed[1].RolledBack {
			t.Fatalf("expected rolled back flag")
		}
		if !r.FinishedAt.Equal(start.Add(time.Minute)) {
			t.Fatalf("unexpected finish time")
		}
	})

	t.Run("preview payloads", func(t *testing.T) {
		b := NewReportBuilder(true, start)
		b.Record(entities.MigrationOutcome{LegacyID: "a", Kind: entities.OutcomePreviewed, Preview: &entities.CanonicalProduce{Quantity: 5}})
		r := b.Build(start)
		if len(r.Previewed) != 1 || r.Previewed[0].Payload.Quantity != 5 || len(r.Migrated) != 0 {
			t.Fatalf("unexpected report: %+v", r)
		}
	})

	t.Run("one capacity warning per room", func(t *testing.T) {
		b := NewReportBuilder(true, start)
		b.NoteRoom(entities.Room{ID: "room-1", Capacity: 100, CurrentOccupancy: 90})
		b.NoteRoom(entities.Room{ID: "room-1", Capacity: 100, CurrentOccupancy: 110})
		b.NoteRoom(entities.Room{ID: "room-1", Capacity: 100, CurrentOccupancy: 130})
		r := b.Build(start)
		if len(r.Warnings) != 1 {
			t.Fatalf("expected 1 warning, got %v", r.Warnings)
		}
		if !strings.HasPrefix(r.Warnings[0], "projected ") || !strings.Contains(r.Warnings[0], "by 30kg") {
			t.Fatalf("unexpected warning: %s", r.Warnings[0])
		}
	})

	t.Run("abort", func(t *testing.T) {
		b := NewReportBuilder(false, start)
		b.Abort(errors.New("selection failed"))
		r := b.Build(start)
		if r.RunError != "selection failed" || r.SuccessCount() != 0 || r.FailureCount() != 1 {
			t.Fatalf("unexpected report: %+v", r)
		}
	})
}
