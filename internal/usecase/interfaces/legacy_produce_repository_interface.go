package interfaces

import (
	"context"
	"errors"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

// ErrClaimLost is returned when a legacy record changed (or was claimed by
// another run) since it was selected.
var ErrClaimLost = errors.New("legacy record claimed by another run")

//go:generate mockgen -source=legacy_produce_repository_interface.go -destination=mocks/legacy_produce_repository_mock.go -package=mock_interfaces

// ILegacyProduceRepository abstracts the legacy produce store.
//
// The migration engine must be able to:
//   - list records matching an eligibility predicate
//   - read back a single record to settle an unclear write result
//   - claim a record with a version check before writing anything for it
//   - release a claim when the migration of the record is abandoned
//   - flag the record Removed with an appended note once migrated
type ILegacyProduceRepository interface {
	ListEligible(ctx context.Context, filter entities.EligibilityFilter) ([]entities.LegacyProduce, error)
	GetByID(ctx context.Context, id string) (entities.LegacyProduce, error)
	Claim(ctx context.Context, p entities.LegacyProduce, token string) (entities.LegacyProduce, error)
	Release(ctx context.Context, id, token string) error
	MarkMigrated(ctx context.Context, id, token, notes string) error
}
