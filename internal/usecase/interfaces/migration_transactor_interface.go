package interfaces

import (
	"context"
	"errors"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

// ErrRoomMissing is returned when a committed migration names an unknown room.
var ErrRoomMissing = errors.New("room does not exist")

//go:generate mockgen -source=migration_transactor_interface.go -destination=mocks/migration_transactor_mock.go -package=mock_interfaces

// IMigrationTransactor is implemented by stores that can apply every write of a
// record migration atomically: create the stored produce, add its quantity to
// the room occupancy and flag the legacy record. Nothing is written when the
// commit fails. A legacy record whose version moved returns ErrClaimLost.
type IMigrationTransactor interface {
	CommitMigration(ctx context.Context, c entities.MigrationCommit) (entities.Room, error)
}
