package interfaces

import (
	"context"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

//go:generate mockgen -source=room_repository_interface.go -destination=mocks/room_repository_mock.go -package=mock_interfaces

// IRoomRepository abstracts the room aggregate. AddOccupancy returns a zero
// Room when the room does not exist.
type IRoomRepository interface {
	GetByID(ctx context.Context, id string) (entities.Room, error)
	AddOccupancy(ctx context.Context, id string, delta float64) (entities.Room, error)
}
