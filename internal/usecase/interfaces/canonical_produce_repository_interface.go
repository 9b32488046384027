package interfaces

import (
	"context"
	"errors"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

// ErrDuplicateProduce is returned when a stored produce id is already taken.
var ErrDuplicateProduce = errors.New("stored produce already exists")

//go:generate mockgen -source=canonical_produce_repository_interface.go -destination=mocks/canonical_produce_repository_mock.go -package=mock_interfaces

// ICanonicalProduceRepository abstracts persistence of stored produce.
// Delete exists only to compensate a create of the same run.
type ICanonicalProduceRepository interface {
	Create(ctx context.Context, p entities.CanonicalProduce) (entities.CanonicalProduce, error)
	GetByID(ctx context.Context, id string) (entities.CanonicalProduce, error)
	Delete(ctx context.Context, id string) error
}
