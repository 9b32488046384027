package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

func TestRenderText_CommittedRun(t *testing.T) {
	report := entities.MigrationReport{
		State:         entities.RunStateDone,
		ApproverID:    "admin-1",
		TotalSelected: 3,
		Migrated:      []entities.MigratedEntry{{LegacyID: "lp-1", CanonicalID: "sp-1"}},
		Failed: []entities.FailedEntry{
			{LegacyID: "lp-2", ProduceType: "potato", Step: entities.StepValidate, Reason: "draft rejected: missing quantity"},
			{LegacyID: "lp-3", Step: entities.StepValidate, Reason: "draft rejected: missing produce type"},
		},
		Warnings: []string{"room room-1 occupancy 700kg exceeds capacity 600kg by 100kg"},
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, report); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"selected: 3  migrated: 1  failed: 2  skipped: 0",
		"approver: admin-1\n",
		"  lp-1 -> sp-1\n",
		"  lp-2 (potato): draft rejected: missing quantity\n",
		"  lp-3 (unknown): draft rejected: missing produce type\n",
		"  - room room-1 occupancy 700kg exceeds capacity 600kg by 100kg\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "dry run") || strings.Contains(out, "Run aborted") {
		t.Fatalf("unexpected section in output:\n%s", out)
	}
}

func TestRenderText_DryRun(t *testing.T) {
	report := entities.MigrationReport{
		DryRun:           true,
		ApproverID:       "farmer-1",
		ApproverFallback: true,
		TotalSelected:    1,
		Previewed: []entities.PreviewEntry{{
			LegacyID: "lp-1",
			Payload: entities.CanonicalProduce{
				ProduceType:    entities.ProduceTypeOther,
				Quantity:       500,
				Unit:           "kg",
				Condition:      entities.ConditionFresh,
				RoomID:         "room-1",
				OwnerID:        "farmer-1",
				EstimatedValue: 31000,
				TargetPrice:    62,
			},
		}},
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, report); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Migration report (dry run, nothing persisted)",
		"previewed: 1",
		"approver: farmer-1 (fallback)",
		"  lp-1 -> Other 500kg Fresh in room room-1, owner farmer-1, estimated value 31000, target price 62\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderText_RunError(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, entities.MigrationReport{RunError: "selection failed: timeout"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(buf.String(), "Run aborted: selection failed: timeout") {
		t.Fatalf("missing run error:\n%s", buf.String())
	}
}

func TestRenderJSON(t *testing.T) {
	report := entities.MigrationReport{
		TotalSelected: 1,
		Migrated:      []entities.MigratedEntry{{LegacyID: "lp-1", CanonicalID: "sp-1"}},
		Failed:        []entities.FailedEntry{},
	}

	var buf bytes.Buffer
	if err := RenderJSON(&buf, report); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["total_selected"].(float64) != 1 {
		t.Fatalf("unexpected total_selected %v", got["total_selected"])
	}
	if failed, ok := got["failed"].([]any); !ok || len(failed) != 0 {
		t.Fatalf("expected empty failed list, got %v", got["failed"])
	}
}
