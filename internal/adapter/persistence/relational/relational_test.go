package relational

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/infrastructure/database"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type testStore struct {
	db         *gorm.DB
	legacy     *LegacyProduceRepository
	canonical  *CanonicalProduceRepository
	rooms      *RoomRepository
	owners     *OwnerRepository
	transactor *MigrationTransactor
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testStore{
		db:         db,
		legacy:     NewLegacyProduceRepository(db, time.Second),
		canonical:  NewCanonicalProduceRepository(db, time.Second),
		rooms:      NewRoomRepository(db, time.Second),
		owners:     NewOwnerRepository(db, time.Second),
		transactor: NewMigrationTransactor(db, time.Second),
	}
}

var baseTime = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func (s *testStore) seed(t *testing.T, records ...entities.LegacyProduce) {
	t.Helper()
	ctx := context.Background()
	if err := s.rooms.Save(ctx, entities.Room{ID: "room-1", Name: "Cold Room A", Capacity: 1000, CurrentOccupancy: 100}); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	if err := s.owners.Save(ctx, entities.Owner{ID: "farmer-1", Name: "Wanjiku"}); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	for _, r := range records {
		if err := s.legacy.Insert(ctx, r); err != nil {
			t.Fatalf("seed legacy %s: %v", r.ID, err)
		}
	}
}

func legacy(id string, status entities.LegacyStatus, qty float64, offset time.Duration) entities.LegacyProduce {
	return entities.LegacyProduce{
		ID:                 id,
		ProduceType:        "tomatoe",
		Quantity:           f64(qty),
		Condition:          "excellent",
		CurrentMarketPrice: f64(62),
		RoomID:             "room-1",
		OwnerID:            "farmer-1",
		CreatedAt:          baseTime.Add(offset),
		Status:             status,
		Notes:              "from spreadsheet",
	}
}

func (s *testStore) occupancy(t *testing.T) float64 {
	t.Helper()
	room, err := s.rooms.GetByID(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	return room.CurrentOccupancy
}

func (s *testStore) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := s.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestLegacyProduceRepository_ListEligible(t *testing.T) {
	s := newTestStore(t)
	sold := legacy("lp-sold", entities.LegacyStatusActive, 10, 3*time.Hour)
	sold.Sold = true
	s.seed(t,
		legacy("lp-2", entities.LegacyStatusListed, 10, 2*time.Hour),
		legacy("lp-1", entities.LegacyStatusActive, 10, time.Hour),
		legacy("lp-gone", entities.LegacyStatusRemoved, 10, 0),
		sold,
	)

	got, err := s.legacy.ListEligible(context.Background(), entities.DefaultEligibilityFilter())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0].ID != "lp-1" || got[1].ID != "lp-2" {
		t.Fatalf("unexpected records %+v", got)
	}
	if got[0].CurrentMarketPrice == nil || *got[0].CurrentMarketPrice != 62 || got[0].ExpectedPeakPrice != nil {
		t.Fatalf("optional prices not preserved: %+v", got[0])
	}

	got, err = s.legacy.ListEligible(context.Background(), entities.EligibilityFilter{
		Statuses:    []entities.LegacyStatus{entities.LegacyStatusActive},
		IncludeSold: true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected sold record included, got %+v", got)
	}
}

func TestLegacyProduceRepository_Claim(t *testing.T) {
	s := newTestStore(t)
	s.seed(t, legacy("lp-1", entities.LegacyStatusActive, 10, 0))
	ctx := context.Background()

	rec, _ := s.legacy.GetByID(ctx, "lp-1")
	claimed, err := s.legacy.Claim(ctx, rec, "tok-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claimed.ClaimToken != "tok-1" || claimed.Version != rec.Version+1 {
		t.Fatalf("unexpected claimed record %+v", claimed)
	}

	if _, err := s.legacy.Claim(ctx, rec, "tok-2"); !errors.Is(err, interfaces.ErrClaimLost) {
		t.Fatalf("stale claim: expected ErrClaimLost, got %v", err)
	}
	if err := s.legacy.MarkMigrated(ctx, "lp-1", "tok-2", "x"); !errors.Is(err, interfaces.ErrClaimLost) {
		t.Fatalf("foreign token: expected ErrClaimLost, got %v", err)
	}

	if err := s.legacy.Release(ctx, "lp-1", "tok-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	after, _ := s.legacy.GetByID(ctx, "lp-1")
	if after.ClaimToken != "" || after.Status != entities.LegacyStatusActive {
		t.Fatalf("unexpected released record %+v", after)
	}
}

func TestMigrationTransactor_RollsBackOnVersionChange(t *testing.T) {
	s := newTestStore(t)
	s.seed(t, legacy("lp-1", entities.LegacyStatusActive, 10, 0))
	ctx := context.Background()

	rec, _ := s.legacy.GetByID(ctx, "lp-1")
	stale := rec
	stale.Version = rec.Version + 5

	_, err := s.transactor.CommitMigration(ctx, entities.MigrationCommit{
		Produce: entities.CanonicalProduce{ID: "sp-1", LegacyID: "lp-1", RoomID: "room-1", Quantity: 10},
		Legacy:  stale,
		Notes:   "Migrated to stored produce sp-1",
	})
	if !errors.Is(err, interfaces.ErrClaimLost) {
		t.Fatalf("expected ErrClaimLost, got %v", err)
	}
	if n := s.count(t, &storedProduceModel{}); n != 0 {
		t.Fatalf("expected no stored produce, got %d", n)
	}
	if occ := s.occupancy(t); occ != 100 {
		t.Fatalf("expected occupancy 100, got %v", occ)
	}
}

func TestMigrationTransactor_MissingRoom(t *testing.T) {
	s := newTestStore(t)
	s.seed(t, legacy("lp-1", entities.LegacyStatusActive, 10, 0))
	ctx := context.Background()

	rec, _ := s.legacy.GetByID(ctx, "lp-1")
	_, err := s.transactor.CommitMigration(ctx, entities.MigrationCommit{
		Produce: entities.CanonicalProduce{ID: "sp-1", LegacyID: "lp-1", RoomID: "room-404", Quantity: 10},
		Legacy:  rec,
	})
	if !errors.Is(err, interfaces.ErrRoomMissing) {
		t.Fatalf("expected ErrRoomMissing, got %v", err)
	}
	if n := s.count(t, &storedProduceModel{}); n != 0 {
		t.Fatalf("expected no stored produce, got %d", n)
	}
	after, _ := s.legacy.GetByID(ctx, "lp-1")
	if after.Status != entities.LegacyStatusActive || after.Version != rec.Version {
		t.Fatalf("legacy record changed: %+v", after)
	}
}

func TestCanonicalProduceRepository_CreateDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := entities.CanonicalProduce{ID: "sp-1", LegacyID: "lp-1", ProduceType: entities.ProduceTypeOther, CreatedAt: baseTime}

	if _, err := s.canonical.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.canonical.Create(ctx, p); !errors.Is(err, interfaces.ErrDuplicateProduce) {
		t.Fatalf("expected ErrDuplicateProduce, got %v", err)
	}
	if err := s.canonical.Delete(ctx, "sp-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.canonical.GetByID(ctx, "sp-1")
	if err != nil || got.ID != "" {
		t.Fatalf("expected zero value after delete, got %+v %v", got, err)
	}
}

func runOptions(dryRun, atomic bool) usecase.RunOptions {
	return usecase.RunOptions{
		DryRun:  dryRun,
		AdminID: "admin-1",
		Filter:  entities.DefaultEligibilityFilter(),
		Atomic:  atomic,
	}
}

func TestMigrationRun_DryRunWritesNothing(t *testing.T) {
	s := newTestStore(t)
	s.seed(t,
		legacy("lp-1", entities.LegacyStatusActive, 500, 0),
		legacy("lp-2", entities.LegacyStatusListed, 200, time.Hour),
	)
	uc := usecase.NewMigrationUseCase(s.legacy, s.canonical, s.rooms, s.owners, s.transactor)

	report, err := uc.Run(context.Background(), runOptions(true, true))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(report.Previewed) != 2 || report.SuccessCount() != 2 {
		t.Fatalf("expected 2 previews, got %+v", report)
	}
	if report.Previewed[0].Payload.EstimatedValue != 31000 || report.Previewed[0].Payload.ProduceType != entities.ProduceTypeOther {
		t.Fatalf("unexpected preview %+v", report.Previewed[0].Payload)
	}
	if n := s.count(t, &storedProduceModel{}); n != 0 {
		t.Fatalf("dry run created %d stored produce", n)
	}
	if occ := s.occupancy(t); occ != 100 {
		t.Fatalf("dry run changed occupancy to %v", occ)
	}
	rec, _ := s.legacy.GetByID(context.Background(), "lp-1")
	if rec.Status != entities.LegacyStatusActive || rec.Notes != "from spreadsheet" || rec.Version != 0 {
		t.Fatalf("dry run changed legacy record %+v", rec)
	}
}

func TestMigrationRun_CommitsAndDoesNotReselect(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		name := "step-wise"
		if atomic {
			name = "atomic"
		}
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			s.seed(t,
				legacy("lp-1", entities.LegacyStatusActive, 500, 0),
				legacy("lp-2", entities.LegacyStatusListed, 200, time.Hour),
			)
			uc := usecase.NewMigrationUseCase(s.legacy, s.canonical, s.rooms, s.owners, s.transactor)
			ctx := context.Background()

			report, err := uc.Run(ctx, runOptions(false, atomic))
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(report.Migrated) != 2 || len(report.Failed) != 0 {
				t.Fatalf("unexpected report %+v", report)
			}
			if occ := s.occupancy(t); occ != 800 {
				t.Fatalf("expected occupancy 800, got %v", occ)
			}

			first := report.Migrated[0]
			stored, err := s.canonical.GetByID(ctx, first.CanonicalID)
			if err != nil || stored.LegacyID != first.LegacyID {
				t.Fatalf("stored produce not linked: %+v %v", stored, err)
			}
			if stored.Approval.ApprovedBy != "admin-1" || stored.Status != entities.StoredProduceStatusApproved {
				t.Fatalf("unexpected approval %+v", stored)
			}
			if len(stored.PriceHistory) != 1 || stored.PriceHistory[0].Price != 62 {
				t.Fatalf("unexpected price history %+v", stored.PriceHistory)
			}

			rec, _ := s.legacy.GetByID(ctx, first.LegacyID)
			if rec.Status != entities.LegacyStatusRemoved || rec.ClaimToken != "" {
				t.Fatalf("legacy record not flagged: %+v", rec)
			}
			if !strings.HasPrefix(rec.Notes, "from spreadsheet\n") || !strings.Contains(rec.Notes, first.CanonicalID) {
				t.Fatalf("notes not appended: %q", rec.Notes)
			}

			again, err := uc.Run(ctx, runOptions(false, atomic))
			if err != nil {
				t.Fatalf("rerun: %v", err)
			}
			if again.TotalSelected != 0 || len(again.Migrated) != 0 {
				t.Fatalf("rerun reselected records: %+v", again)
			}
			if occ := s.occupancy(t); occ != 800 {
				t.Fatalf("rerun changed occupancy to %v", occ)
			}
		})
	}
}

func TestMigrationRun_MissingRoomFailsValidation(t *testing.T) {
	s := newTestStore(t)
	orphan := legacy("lp-1", entities.LegacyStatusActive, 500, 0)
	orphan.RoomID = "room-404"
	s.seed(t, orphan)
	uc := usecase.NewMigrationUseCase(s.legacy, s.canonical, s.rooms, s.owners, s.transactor)

	report, err := uc.Run(context.Background(), runOptions(false, true))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(report.Failed) != 1 || report.Failed[0].Step != entities.StepValidate {
		t.Fatalf("expected a validation failure, got %+v", report.Failed)
	}
	if n := s.count(t, &storedProduceModel{}); n != 0 {
		t.Fatalf("expected no stored produce, got %d", n)
	}
}

func TestRepositories_ApplyTimeout(t *testing.T) {
	s := newTestStore(t)
	s.seed(t)

	rooms := NewRoomRepository(s.db, time.Nanosecond)
	if _, err := rooms.GetByID(context.Background(), "room-1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	ctx, cancel := withTimeout(context.Background(), 0)
	defer cancel()
	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > defaultTimeout {
		t.Fatalf("expected default deadline, got %v %t", deadline, ok)
	}
}

// flagThenTimeout lands the migrated flag and then reports a deadline, the way
// a store call does when its response is lost.
type flagThenTimeout struct {
	*LegacyProduceRepository
}

func (r flagThenTimeout) MarkMigrated(ctx context.Context, id, token, notes string) error {
	if err := r.LegacyProduceRepository.MarkMigrated(ctx, id, token, notes); err != nil {
		return err
	}
	return context.DeadlineExceeded
}

// commitThenTimeout commits the transaction and then reports a deadline.
type commitThenTimeout struct {
	*MigrationTransactor
}

func (t commitThenTimeout) CommitMigration(ctx context.Context, c entities.MigrationCommit) (entities.Room, error) {
	if _, err := t.MigrationTransactor.CommitMigration(ctx, c); err != nil {
		return entities.Room{}, err
	}
	return entities.Room{}, context.DeadlineExceeded
}

func TestMigrationRun_WriteLandedBeforeError(t *testing.T) {
	cases := []struct {
		name   string
		atomic bool
		build  func(s *testStore) *usecase.MigrationUseCase
	}{
		{"step-wise flag", false, func(s *testStore) *usecase.MigrationUseCase {
			return usecase.NewMigrationUseCase(flagThenTimeout{s.legacy}, s.canonical, s.rooms, s.owners, nil)
		}},
		{"atomic commit", true, func(s *testStore) *usecase.MigrationUseCase {
			return usecase.NewMigrationUseCase(s.legacy, s.canonical, s.rooms, s.owners, commitThenTimeout{s.transactor})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			s.seed(t, legacy("lp-1", entities.LegacyStatusActive, 120, 0))
			uc := tc.build(s)
			ctx := context.Background()

			report, err := uc.Run(ctx, runOptions(false, tc.atomic))
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(report.Migrated) != 1 || len(report.Failed) != 0 {
				t.Fatalf("expected the landed write to count as migrated, got %+v", report)
			}
			if n := s.count(t, &storedProduceModel{}); n != 1 {
				t.Fatalf("expected 1 stored produce, got %d", n)
			}
			if occ := s.occupancy(t); occ != 220 {
				t.Fatalf("expected occupancy 220, got %v", occ)
			}
			rec, _ := s.legacy.GetByID(ctx, "lp-1")
			stored, _ := s.canonical.GetByID(ctx, report.Migrated[0].CanonicalID)
			if rec.Status != entities.LegacyStatusRemoved || stored.LegacyID != "lp-1" {
				t.Fatalf("legacy record and stored produce disagree: %+v %+v", rec, stored)
			}

			again, err := uc.Run(ctx, runOptions(false, tc.atomic))
			if err != nil || again.TotalSelected != 0 {
				t.Fatalf("rerun reselected records: %+v %v", again, err)
			}
		})
	}
}
