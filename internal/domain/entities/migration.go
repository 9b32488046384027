package entities

import "time"

// OutcomeKind classifies the result of migrating one legacy record.
type OutcomeKind string

const (
	OutcomeMigrated  OutcomeKind = "migrated"
	OutcomePreviewed OutcomeKind = "previewed"
	OutcomeFailed    OutcomeKind = "failed"
	OutcomeSkipped   OutcomeKind = "skipped"
)

// MigrationStep names the per-record step an outcome was decided at.
type MigrationStep string

const (
	StepValidate   MigrationStep = "validate"
	StepClaim      MigrationStep = "claim"
	StepPersist    MigrationStep = "persist"
	StepOccupancy  MigrationStep = "occupancy"
	StepFlagLegacy MigrationStep = "flag-legacy"
	StepCommit     MigrationStep = "commit"
)

// RunState is the state of a migration run.
type RunState string

const (
	RunStateNotStarted        RunState = "NotStarted"
	RunStateSelecting         RunState = "Selecting"
	RunStateProcessingRecords RunState = "ProcessingRecords"
	RunStateReporting         RunState = "Reporting"
	RunStateDone              RunState = "Done"
)

// MigrationOutcome is the per-record result of a run. It only lives for the
// duration of the run.
type MigrationOutcome struct {
	LegacyID    string            `json:"legacy_id"`
	ProduceType string            `json:"produce_type"`
	Kind        OutcomeKind       `json:"kind"`
	CanonicalID string            `json:"canonical_id,omitempty"`
	Preview     *CanonicalProduce `json:"preview,omitempty"`
	Step        MigrationStep     `json:"step,omitempty"`
	Reason      string            `json:"reason,omitempty"`

	// RolledBack is set on write-step failures when the store holds no write
	// of the record afterwards (aborted transaction or successful compensation).
	RolledBack bool `json:"rolled_back,omitempty"`
}

// MigratedEntry pairs a legacy record with the stored produce created from it.
type MigratedEntry struct {
	LegacyID    string `json:"legacy_id"`
	CanonicalID string `json:"canonical_id"`
}

// PreviewEntry is a dry-run success carrying the would-be stored produce.
type PreviewEntry struct {
	LegacyID string           `json:"legacy_id"`
	Payload  CanonicalProduce `json:"payload"`
}

// FailedEntry is a per-record failure.
type FailedEntry struct {
	LegacyID    string        `json:"legacy_id"`
	ProduceType string        `json:"produce_type"`
	Step        MigrationStep `json:"step"`
	Reason      string        `json:"reason"`
	RolledBack  bool          `json:"rolled_back"`
}

// SkippedEntry is a record another run claimed first.
type SkippedEntry struct {
	LegacyID string `json:"legacy_id"`
	Reason   string `json:"reason"`
}

// MigrationReport is the structured, authoritative summary of a run.
type MigrationReport struct {
	DryRun           bool      `json:"dry_run"`
	State            RunState  `json:"state"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	ApproverID       string    `json:"approver_id"`
	ApproverFallback bool      `json:"approver_fallback"`

	TotalSelected int             `json:"total_selected"`
	Migrated      []MigratedEntry `json:"migrated"`
	Previewed     []PreviewEntry  `json:"previewed,omitempty"`
	Failed        []FailedEntry   `json:"failed"`
	Skipped       []SkippedEntry  `json:"skipped,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`

	// RunError is set when the run aborted before processing records.
	RunError string `json:"run_error,omitempty"`
}

// SuccessCount counts migrated records, or previewed ones in a dry run.
func (r MigrationReport) SuccessCount() int {
	if r.DryRun {
		return len(r.Previewed)
	}
	return len(r.Migrated)
}

// FailureCount counts failed records plus the run-level error, if any.
func (r MigrationReport) FailureCount() int {
	n := len(r.Failed)
	if r.RunError != "" {
		n++
	}
	return n
}

// MigrationCommit is the set of writes that migrate one legacy record.
type MigrationCommit struct {
	Produce CanonicalProduce

	// Legacy is the record as selected. Its Version must still match for the
	// commit to apply.
	Legacy LegacyProduce
	Notes  string
}
