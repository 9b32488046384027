package relational

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// MigrationTransactor commits a record migration in one database transaction.
type MigrationTransactor struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ interfaces.IMigrationTransactor = (*MigrationTransactor)(nil)

func NewMigrationTransactor(db *gorm.DB, timeout time.Duration) *MigrationTransactor {
	return &MigrationTransactor{db: db, timeout: timeout}
}

func (t *MigrationTransactor) CommitMigration(ctx context.Context, c entities.MigrationCommit) (entities.Room, error) {
	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	var room entities.Room
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createStoredProduce(tx, c.Produce); err != nil {
			return err
		}

		ok, err := addOccupancy(tx, c.Produce.RoomID, c.Produce.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: room_id=%s", interfaces.ErrRoomMissing, c.Produce.RoomID)
		}

		result := tx.Model(&legacyProduceModel{}).
			Where("id = ? AND version = ? AND status = ?", c.Legacy.ID, c.Legacy.Version, string(c.Legacy.Status)).
			Updates(map[string]any{
				"status":      string(entities.LegacyStatusRemoved),
				"notes":       c.Notes,
				"claim_token": "",
				"version":     gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return interfaces.ErrClaimLost
		}

		room, err = getRoom(tx, c.Produce.RoomID)
		return err
	})
	if err != nil {
		log.Printf("[migration][relational] transaction rolled back legacy_id=%s err=%v", c.Legacy.ID, err)
		return entities.Room{}, err
	}
	return room, nil
}
