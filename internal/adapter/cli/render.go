package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, r entities.MigrationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// RenderText writes the human-readable summary of a run.
func RenderText(w io.Writer, r entities.MigrationReport) error {
	var b strings.Builder

	title := "Migration report"
	if r.DryRun {
		title += " (dry run, nothing persisted)"
	}
	b.WriteString(title + "\n")
	fmt.Fprintf(&b, "selected: %d  %s: %d  failed: %d  skipped: %d\n",
		r.TotalSelected, successLabel(r), r.SuccessCount(), len(r.Failed), len(r.Skipped))
	if r.ApproverID != "" {
		approver := r.ApproverID
		if r.ApproverFallback {
			approver += " (fallback)"
		}
		fmt.Fprintf(&b, "approver: %s\n", approver)
	}

	if len(r.Migrated) > 0 {
		b.WriteString("\nMigrated:\n")
		for _, m := range r.Migrated {
			fmt.Fprintf(&b, "  %s -> %s\n", m.LegacyID, m.CanonicalID)
		}
	}
	if len(r.Previewed) > 0 {
		b.WriteString("\nWould migrate:\n")
		for _, p := range r.Previewed {
			fmt.Fprintf(&b, "  %s -> %s\n", p.LegacyID, describePreview(p.Payload))
		}
	}
	if len(r.Failed) > 0 {
		b.WriteString("\nFailed:\n")
		for _, f := range r.Failed {
			produceType := f.ProduceType
			if produceType == "" {
				produceType = "unknown"
			}
			fmt.Fprintf(&b, "  %s (%s): %s\n", f.LegacyID, produceType, f.Reason)
		}
	}
	if len(r.Skipped) > 0 {
		b.WriteString("\nSkipped:\n")
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "  %s: %s\n", s.LegacyID, s.Reason)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, msg := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	if r.RunError != "" {
		fmt.Fprintf(&b, "\nRun aborted: %s\n", r.RunError)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func successLabel(r entities.MigrationReport) string {
	if r.DryRun {
		return "previewed"
	}
	return "migrated"
}

func describePreview(p entities.CanonicalProduce) string {
	return fmt.Sprintf("%s %g%s %s in room %s, owner %s, estimated value %g, target price %g",
		p.ProduceType, p.Quantity, p.Unit, p.Condition, p.RoomID, p.OwnerID, p.EstimatedValue, p.TargetPrice)
}
