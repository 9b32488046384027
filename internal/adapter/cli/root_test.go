package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/adapter/persistence/relational"
	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/infrastructure/config"
	"github.com/ondieki1237/stayfresh-sub001/internal/infrastructure/database"
)

// sqliteOpener returns an in-memory store seeded with two legacy records.
func sqliteOpener(t *testing.T, seen *config.Config) StoreOpener {
	t.Helper()
	return func(ctx context.Context, cfg config.Config) (*Store, error) {
		*seen = cfg

		db, err := database.OpenSQLite(":memory:", false)
		if err != nil {
			return nil, err
		}
		if err := relational.Migrate(db); err != nil {
			return nil, err
		}
		legacy := relational.NewLegacyProduceRepository(db, cfg.StoreTimeout)
		rooms := relational.NewRoomRepository(db, cfg.StoreTimeout)
		owners := relational.NewOwnerRepository(db, cfg.StoreTimeout)

		qty := 120.0
		if err := rooms.Save(ctx, entities.Room{ID: "room-1", Capacity: 1000}); err != nil {
			return nil, err
		}
		if err := owners.Save(ctx, entities.Owner{ID: "farmer-1", Name: "Otieno"}); err != nil {
			return nil, err
		}
		for i, id := range []string{"lp-1", "lp-2"} {
			rec := entities.LegacyProduce{
				ID:          id,
				ProduceType: "Onions",
				RoomID:      "room-1",
				OwnerID:     "farmer-1",
				CreatedAt:   time.Date(2024, 3, 1, i, 0, 0, 0, time.UTC),
				Status:      entities.LegacyStatusActive,
			}
			if id == "lp-1" {
				rec.Quantity = &qty
			}
			if err := legacy.Insert(ctx, rec); err != nil {
				return nil, err
			}
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &Store{
			Legacy:     legacy,
			Canonical:  relational.NewCanonicalProduceRepository(db, cfg.StoreTimeout),
			Rooms:      rooms,
			Owners:     owners,
			Transactor: relational.NewMigrationTransactor(db, cfg.StoreTimeout),
			Close:      sqlDB.Close,
		}, nil
	}
}

func TestRootCommand_JSONDryRun(t *testing.T) {
	var seen config.Config
	cmd := RootCommand(sqliteOpener(t, &seen))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dry-run", "--admin-id", "admin-7", "--output", "json", "--store", "sqlite"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !seen.DryRun || seen.AdminID != "admin-7" || seen.StoreDriver != config.StoreSQLite {
		t.Fatalf("flags not applied: %+v", seen)
	}

	var report entities.MigrationReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, out.String())
	}
	if report.TotalSelected != 2 || len(report.Previewed) != 1 || len(report.Failed) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Failed[0].LegacyID != "lp-2" || report.Failed[0].Step != entities.StepValidate {
		t.Fatalf("unexpected failure %+v", report.Failed[0])
	}
	if report.Previewed[0].Payload.Approval.ApprovedBy != "admin-7" {
		t.Fatalf("approver not applied: %+v", report.Previewed[0].Payload.Approval)
	}
}

func TestRootCommand_TextRunSucceedsWithRecordFailures(t *testing.T) {
	var seen config.Config
	cmd := RootCommand(sqliteOpener(t, &seen))
	var out bytes.Buffer
	cmd.SetOut(&out)
	metricsPath := filepath.Join(t.TempDir(), "migration.prom")
	cmd.SetArgs([]string{"--store", "sqlite", "--atomic=false", "--metrics-file", metricsPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("partial failures must not fail the run: %v", err)
	}
	if seen.Atomic {
		t.Fatalf("expected --atomic=false to be applied")
	}
	text := out.String()
	if !strings.Contains(text, "selected: 2  migrated: 1  failed: 1") {
		t.Fatalf("unexpected summary:\n%s", text)
	}
	if !strings.Contains(text, "approver: farmer-1 (fallback)") {
		t.Fatalf("expected approver fallback:\n%s", text)
	}
	if !strings.Contains(text, "lp-2 (Onions):") {
		t.Fatalf("expected failure line for lp-2:\n%s", text)
	}

	raw, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(raw), `stayfresh_migration_records{mode="commit",outcome="failed"} 1`) {
		t.Fatalf("unexpected metrics:\n%s", raw)
	}
}

func TestRootCommand_Errors(t *testing.T) {
	t.Run("store connection failure", func(t *testing.T) {
		boom := errors.New("dial tcp: connection refused")
		cmd := RootCommand(func(context.Context, config.Config) (*Store, error) { return nil, boom })
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); !errors.Is(err, boom) {
			t.Fatalf("expected %v, got %v", boom, err)
		}
	})

	t.Run("invalid output format", func(t *testing.T) {
		called := false
		cmd := RootCommand(func(context.Context, config.Config) (*Store, error) {
			called = true
			return nil, nil
		})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--output", "yaml"})

		if err := cmd.Execute(); !errors.Is(err, config.ErrInvalidOutput) {
			t.Fatalf("expected ErrInvalidOutput, got %v", err)
		}
		if called {
			t.Fatalf("store must not be opened with invalid config")
		}
	})

	t.Run("positional arguments rejected", func(t *testing.T) {
		cmd := RootCommand(OpenStore)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"extra"})

		if err := cmd.Execute(); err == nil {
			t.Fatalf("expected an error for positional arguments")
		}
	})
}

func TestOpenStore_SQLiteAppliesTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDriver = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "stayfresh.db")
	cfg.StoreTimeout = time.Nanosecond

	store, err := OpenStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := store.Rooms.GetByID(context.Background(), "room-1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
