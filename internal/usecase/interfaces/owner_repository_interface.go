package interfaces

import (
	"context"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

//go:generate mockgen -source=owner_repository_interface.go -destination=mocks/owner_repository_mock.go -package=mock_interfaces

// IOwnerRepository resolves produce owners (farmers).
type IOwnerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Owner, error)
}
