package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/ondieki1237/stayfresh-sub001/internal/adapter/persistence/relational"
	"github.com/ondieki1237/stayfresh-sub001/internal/adapter/persistence/repository"
	"github.com/ondieki1237/stayfresh-sub001/internal/infrastructure/config"
	"github.com/ondieki1237/stayfresh-sub001/internal/infrastructure/database"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"
)

// Store bundles the repositories a migration run needs.
type Store struct {
	Legacy     interfaces.ILegacyProduceRepository
	Canonical  interfaces.ICanonicalProduceRepository
	Rooms      interfaces.IRoomRepository
	Owners     interfaces.IOwnerRepository
	Transactor interfaces.IMigrationTransactor

	Close func() error
}

// StoreOpener connects the backing store selected by cfg.
type StoreOpener func(ctx context.Context, cfg config.Config) (*Store, error)

// OpenStore connects DynamoDB or SQLite according to cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		return openSQLiteStore(cfg)
	case config.StoreDynamoDB:
		return openDynamoStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStore, cfg.StoreDriver)
	}
}

func openDynamoStore(ctx context.Context, cfg config.Config) (*Store, error) {
	client, err := database.ConnectDynamoDB(ctx)
	if err != nil {
		return nil, err
	}
	tables := repository.TablesFromEnv()

	cctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := database.CheckTables(cctx, client, tables.Names()...); err != nil {
		return nil, err
	}
	log.Printf("[migration][cli] connected store=dynamodb legacy_table=%s stored_table=%s", tables.LegacyProduce, tables.StoredProduce)

	return &Store{
		Legacy:     repository.NewLegacyProduceDynamoRepository(client, tables, cfg.StoreTimeout),
		Canonical:  repository.NewCanonicalProduceDynamoRepository(client, tables, cfg.StoreTimeout),
		Rooms:      repository.NewRoomDynamoRepository(client, tables, cfg.StoreTimeout),
		Owners:     repository.NewOwnerDynamoRepository(client, tables, cfg.StoreTimeout),
		Transactor: repository.NewMigrationDynamoTransactor(client, tables, cfg.StoreTimeout),
		Close:      func() error { return nil },
	}, nil
}

func openSQLiteStore(cfg config.Config) (*Store, error) {
	db, err := database.OpenSQLite(cfg.SQLitePath, false)
	if err != nil {
		return nil, err
	}
	if err := relational.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	log.Printf("[migration][cli] connected store=sqlite path=%s timeout=%s", cfg.SQLitePath, cfg.StoreTimeout)

	return &Store{
		Legacy:     relational.NewLegacyProduceRepository(db, cfg.StoreTimeout),
		Canonical:  relational.NewCanonicalProduceRepository(db, cfg.StoreTimeout),
		Rooms:      relational.NewRoomRepository(db, cfg.StoreTimeout),
		Owners:     relational.NewOwnerRepository(db, cfg.StoreTimeout),
		Transactor: relational.NewMigrationTransactor(db, cfg.StoreTimeout),
		Close:      sqlDB.Close,
	}, nil
}
