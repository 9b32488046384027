package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"
)

var ErrRoomNotFound = errors.New("room not found")

// OccupancyApplier keeps room occupancy in step with migrated produce. It does
// not enforce capacity; overruns are reported by CapacityWarning.
type OccupancyApplier struct {
	rooms interfaces.IRoomRepository
}

func NewOccupancyApplier(rooms interfaces.IRoomRepository) *OccupancyApplier {
	return &OccupancyApplier{rooms: rooms}
}

// Apply adds quantity to the room occupancy and returns the updated room.
func (a *OccupancyApplier) Apply(ctx context.Context, roomID string, quantity float64) (entities.Room, error) {
	room, err := a.rooms.AddOccupancy(ctx, roomID, quantity)
	if err != nil {
		return entities.Room{}, err
	}
	if room.ID == "" {
		return entities.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return room, nil
}

// Revert undoes a previous Apply of quantity.
func (a *OccupancyApplier) Revert(ctx context.Context, roomID string, quantity float64) error {
	_, err := a.Apply(ctx, roomID, -quantity)
	return err
}

// CapacityWarning describes a capacity overrun of room, if any.
func CapacityWarning(room entities.Room) (string, bool) {
	over := room.Overrun()
	if over == 0 {
		return "", false
	}
	return fmt.Sprintf("room %s occupancy %s exceeds capacity %s by %s",
		roomLabel(room), formatQuantity(room.CurrentOccupancy), formatQuantity(room.Capacity), formatQuantity(over)), true
}

func roomLabel(room entities.Room) string {
	if room.Name != "" && room.Name != room.ID {
		return fmt.Sprintf("%s (%s)", room.ID, room.Name)
	}
	return room.ID
}

func formatQuantity(v float64) string {
	return fmt.Sprintf("%gkg", v)
}
