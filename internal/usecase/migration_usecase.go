package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const migrationNoteTemplate = "Migrated to stored produce %s"

// RunOptions configures one migration run.
type RunOptions struct {
	DryRun  bool
	AdminID string
	Filter  entities.EligibilityFilter

	// Atomic commits each record through the store transactor when one is
	// configured.
	Atomic bool
}

// IMigrationUseCase migrates eligible legacy produce into stored produce.
//
// Run returns an error only for run-level failures (selection). Per-record
// failures are part of the report.
type IMigrationUseCase interface {
	Run(ctx context.Context, opts RunOptions) (entities.MigrationReport, error)
}

type MigrationUseCase struct {
	selector      *ProduceSelector
	applier       *OccupancyApplier
	legacyRepo    interfaces.ILegacyProduceRepository
	canonicalRepo interfaces.ICanonicalProduceRepository
	transactor    interfaces.IMigrationTransactor

	now   func() time.Time
	newID func() string
}

var _ IMigrationUseCase = (*MigrationUseCase)(nil)

// NewMigrationUseCase wires the engine. transactor may be nil, in which case
// every record goes through the step-wise path.
func NewMigrationUseCase(
	legacyRepo interfaces.ILegacyProduceRepository,
	canonicalRepo interfaces.ICanonicalProduceRepository,
	roomRepo interfaces.IRoomRepository,
	ownerRepo interfaces.IOwnerRepository,
	transactor interfaces.IMigrationTransactor,
) *MigrationUseCase {
	return &MigrationUseCase{
		selector:      NewProduceSelector(legacyRepo, roomRepo, ownerRepo),
		applier:       NewOccupancyApplier(roomRepo),
		legacyRepo:    legacyRepo,
		canonicalRepo: canonicalRepo,
		transactor:    transactor,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}
}

func (u *MigrationUseCase) Run(ctx context.Context, opts RunOptions) (entities.MigrationReport, error) {
	startedAt := u.now()
	rb := NewReportBuilder(opts.DryRun, startedAt)
	log.Printf("[migration][usecase] run start dry_run=%t atomic=%t statuses=%v include_sold=%t", opts.DryRun, opts.Atomic, opts.Filter.Statuses, opts.Filter.IncludeSold)
	if opts.Atomic && u.transactor == nil && !opts.DryRun {
		log.Printf("[migration][usecase] store has no transactor; using step-wise commits with compensation")
	}

	u.enter(rb, entities.RunStateSelecting)
	selected, err := u.selector.Select(ctx, opts.Filter)
	if err != nil {
		log.Printf("[migration][usecase] run aborted before processing err=%v", err)
		rb.Abort(err)
		u.enter(rb, entities.RunStateReporting)
		return u.finish(rb), err
	}
	rb.SetSelected(len(selected))
	log.Printf("[migration][usecase] selected records count=%d", len(selected))

	approver, from := resolveApprover(opts.AdminID, selected)
	fallback := from >= 0
	rb.SetApprover(approver, fallback)
	if fallback {
		msg := fmt.Sprintf("no admin id given; approving as owner %q of legacy record %s", approver, selected[from].Legacy.ID)
		log.Printf("[migration][usecase] warning: %s", msg)
		rb.Warn(msg)
	}
	approval := entities.Approval{ApprovedBy: approver, ApprovedAt: startedAt}

	u.enter(rb, entities.RunStateProcessingRecords)
	projected := map[string]entities.Room{}
	for _, rec := range selected {
		outcome := u.process(ctx, rec, approval, opts, rb, projected)
		logOutcome(outcome)
		rb.Record(outcome)
	}

	u.enter(rb, entities.RunStateReporting)
	return u.finish(rb), nil
}

// process takes one record from Mapped through OutcomeRecorded. It never
// returns an error; failures become outcomes.
func (u *MigrationUseCase) process(
	ctx context.Context,
	rec SelectedProduce,
	approval entities.Approval,
	opts RunOptions,
	rb *ReportBuilder,
	projected map[string]entities.Room,
) entities.MigrationOutcome {
	draft := MapLegacyProduce(rec, approval)
	if err := ValidateDraft(draft); err != nil {
		return failedOutcome(rec, entities.StepValidate, err.Error(), false)
	}

	if opts.DryRun {
		room, ok := projected[draft.Produce.RoomID]
		if !ok {
			room = *draft.Room
		}
		room.CurrentOccupancy += draft.Produce.Quantity
		projected[room.ID] = room
		rb.NoteRoom(room)

		preview := draft.Produce
		return entities.MigrationOutcome{
			LegacyID:    rec.Legacy.ID,
			ProduceType: rec.Legacy.ProduceType,
			Kind:        entities.OutcomePreviewed,
			Preview:     &preview,
		}
	}

	p := draft.Produce
	p.ID = u.newID()
	p.CreatedAt = u.now()
	if opts.Atomic && u.transactor != nil {
		return u.commitAtomic(ctx, rec, p, rb)
	}
	return u.commitStepwise(ctx, rec, p, rb)
}

func (u *MigrationUseCase) commitAtomic(ctx context.Context, rec SelectedProduce, p entities.CanonicalProduce, rb *ReportBuilder) entities.MigrationOutcome {
	room, err := u.transactor.CommitMigration(ctx, entities.MigrationCommit{
		Produce: p,
		Legacy:  rec.Legacy,
		Notes:   rec.Legacy.AppendNote(migrationNote(p.ID)),
	})
	if errors.Is(err, interfaces.ErrClaimLost) {
		return skippedOutcome(rec, err)
	}
	if err != nil {
		// A timeout can hide a transaction that did commit.
		applied, verr := u.verifyFlagged(ctx, rec.Legacy.ID, p.ID)
		if verr != nil {
			return failedOutcome(rec, entities.StepCommit, unknownOutcomeReason(entities.StepCommit, err, verr), false)
		}
		if applied {
			log.Printf("[migration][usecase] commit returned an error but was applied legacy_id=%s canonical_id=%s err=%v", rec.Legacy.ID, p.ID, err)
			return migratedOutcome(rec, p.ID)
		}
		return failedOutcome(rec, entities.StepCommit, fmt.Sprintf("%s failed: %v; rolled back", entities.StepCommit, err), true)
	}
	rb.NoteRoom(room)
	return migratedOutcome(rec, p.ID)
}

// commitStepwise claims the legacy record, then creates the stored produce,
// adds occupancy and flags the legacy record. A failed step undoes the
// earlier ones in reverse order.
func (u *MigrationUseCase) commitStepwise(ctx context.Context, rec SelectedProduce, p entities.CanonicalProduce, rb *ReportBuilder) entities.MigrationOutcome {
	token := p.ID
	claimed, err := u.legacyRepo.Claim(ctx, rec.Legacy, token)
	if errors.Is(err, interfaces.ErrClaimLost) {
		return skippedOutcome(rec, err)
	}
	if err != nil {
		return failedOutcome(rec, entities.StepClaim, fmt.Sprintf("%s failed: %v", entities.StepClaim, err), true)
	}

	// Compensations must run even when the run context is cancelled.
	cctx := context.WithoutCancel(ctx)
	release := compensation{name: "release claim", fn: func() error {
		err := u.legacyRepo.Release(cctx, rec.Legacy.ID, token)
		if !errors.Is(err, interfaces.ErrClaimLost) {
			return err
		}
		// The claim is gone. That is harmless unless it went because the
		// record was flagged for this produce.
		applied, verr := u.verifyFlagged(cctx, rec.Legacy.ID, p.ID)
		if verr != nil {
			return fmt.Errorf("claim already released, read back failed: %w", verr)
		}
		if applied {
			return errors.New("legacy record already flagged as migrated")
		}
		return nil
	}}
	deleteProduce := compensation{name: "delete stored produce", fn: func() error {
		return u.canonicalRepo.Delete(cctx, p.ID)
	}}
	revertOccupancy := compensation{name: "revert occupancy", fn: func() error {
		return u.applier.Revert(cctx, p.RoomID, p.Quantity)
	}}

	if _, err := u.canonicalRepo.Create(ctx, p); err != nil {
		return rollback(rec, entities.StepPersist, err, release)
	}

	room, err := u.applier.Apply(ctx, p.RoomID, p.Quantity)
	if err != nil {
		return rollback(rec, entities.StepOccupancy, err, deleteProduce, release)
	}

	if err := u.legacyRepo.MarkMigrated(ctx, rec.Legacy.ID, token, claimed.AppendNote(migrationNote(p.ID))); err != nil {
		// Compensating an applied flag would leave a Removed record pointing
		// at deleted produce, so settle what happened first.
		applied, verr := u.verifyFlagged(cctx, rec.Legacy.ID, p.ID)
		if verr != nil {
			return failedOutcome(rec, entities.StepFlagLegacy, unknownOutcomeReason(entities.StepFlagLegacy, err, verr), false)
		}
		if applied {
			log.Printf("[migration][usecase] flag returned an error but was applied legacy_id=%s canonical_id=%s err=%v", rec.Legacy.ID, p.ID, err)
			rb.NoteRoom(room)
			return migratedOutcome(rec, p.ID)
		}
		out := rollback(rec, entities.StepFlagLegacy, err, revertOccupancy, deleteProduce, release)
		if errors.Is(err, interfaces.ErrClaimLost) && out.RolledBack {
			return skippedOutcome(rec, err)
		}
		return out
	}

	rb.NoteRoom(room)
	return migratedOutcome(rec, p.ID)
}

// verifyFlagged reads the legacy record back after a write returned an error.
// It reports true when the record already carries the migrated flag written
// for canonicalID.
func (u *MigrationUseCase) verifyFlagged(ctx context.Context, legacyID, canonicalID string) (bool, error) {
	cur, err := u.legacyRepo.GetByID(context.WithoutCancel(ctx), legacyID)
	if err != nil {
		log.Printf("[migration][usecase] read back legacy record failed legacy_id=%s err=%v", legacyID, err)
		return false, err
	}
	return cur.Status == entities.LegacyStatusRemoved && strings.Contains(cur.Notes, migrationNote(canonicalID)), nil
}

func unknownOutcomeReason(step entities.MigrationStep, cause, readErr error) string {
	return fmt.Sprintf("%s failed: %v; outcome unknown, writes kept for manual review (read back failed: %v)", step, cause, readErr)
}

type compensation struct {
	name string
	fn   func() error
}

func rollback(rec SelectedProduce, step entities.MigrationStep, cause error, comps ...compensation) entities.MigrationOutcome {
	var failures []string
	for _, c := range comps {
		if err := c.fn(); err != nil {
			log.Printf("[migration][usecase] compensation failed legacy_id=%s step=%s action=%q err=%v", rec.Legacy.ID, step, c.name, err)
			failures = append(failures, fmt.Sprintf("%s: %v", c.name, err))
		}
	}
	reason := fmt.Sprintf("%s failed: %v", step, cause)
	if len(failures) == 0 {
		reason += "; rolled back"
	} else {
		reason += "; rollback incomplete, record partially migrated (" + strings.Join(failures, "; ") + ")"
	}
	return failedOutcome(rec, step, reason, len(failures) == 0)
}

func (u *MigrationUseCase) enter(rb *ReportBuilder, s entities.RunState) {
	log.Printf("[migration][usecase] state=%s", s)
	rb.SetState(s)
}

func (u *MigrationUseCase) finish(rb *ReportBuilder) entities.MigrationReport {
	u.enter(rb, entities.RunStateDone)
	r := rb.Build(u.now())
	log.Printf("[migration][usecase] run done selected=%d migrated=%d previewed=%d failed=%d skipped=%d warnings=%d",
		r.TotalSelected, len(r.Migrated), len(r.Previewed), len(r.Failed), len(r.Skipped), len(r.Warnings))
	return r
}

// resolveApprover falls back to the owner of the first selected record whose
// owner resolved when no admin id is configured. The returned index points
// at that record, or is -1.
func resolveApprover(adminID string, selected []SelectedProduce) (string, int) {
	if adminID = strings.TrimSpace(adminID); adminID != "" {
		return adminID, -1
	}
	for i, rec := range selected {
		if rec.Owner != nil && rec.Owner.ID != "" {
			return rec.Owner.ID, i
		}
	}
	return "", -1
}

func migrationNote(canonicalID string) string {
	return fmt.Sprintf(migrationNoteTemplate, canonicalID)
}

func migratedOutcome(rec SelectedProduce, canonicalID string) entities.MigrationOutcome {
	return entities.MigrationOutcome{
		LegacyID:    rec.Legacy.ID,
		ProduceType: rec.Legacy.ProduceType,
		Kind:        entities.OutcomeMigrated,
		CanonicalID: canonicalID,
	}
}

func skippedOutcome(rec SelectedProduce, err error) entities.MigrationOutcome {
	return entities.MigrationOutcome{
		LegacyID:    rec.Legacy.ID,
		ProduceType: rec.Legacy.ProduceType,
		Kind:        entities.OutcomeSkipped,
		Reason:      err.Error(),
	}
}

func failedOutcome(rec SelectedProduce, step entities.MigrationStep, reason string, rolledBack bool) entities.MigrationOutcome {
	return entities.MigrationOutcome{
		LegacyID:    rec.Legacy.ID,
		ProduceType: rec.Legacy.ProduceType,
		Kind:        entities.OutcomeFailed,
		Step:        step,
		Reason:      reason,
		RolledBack:  rolledBack,
	}
}

func logOutcome(o entities.MigrationOutcome) {
	switch o.Kind {
	case entities.OutcomeMigrated:
		log.Printf("[migration][usecase] record migrated legacy_id=%s canonical_id=%s", o.LegacyID, o.CanonicalID)
	case entities.OutcomePreviewed:
		log.Printf("[migration][usecase] record previewed legacy_id=%s produce_type=%s quantity=%g", o.LegacyID, o.Preview.ProduceType, o.Preview.Quantity)
	case entities.OutcomeSkipped:
		log.Printf("[migration][usecase] record skipped legacy_id=%s reason=%q", o.LegacyID, o.Reason)
	default:
		log.Printf("[migration][usecase] record failed legacy_id=%s produce_type=%q step=%s reason=%q", o.LegacyID, o.ProduceType, o.Step, o.Reason)
	}
}
