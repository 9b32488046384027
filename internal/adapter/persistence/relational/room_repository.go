package relational

import (
	"context"
	"errors"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// RoomRepository reads rooms and maintains occupancy on gorm.
type RoomRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ interfaces.IRoomRepository = (*RoomRepository)(nil)

func NewRoomRepository(db *gorm.DB, timeout time.Duration) *RoomRepository {
	return &RoomRepository{db: db, timeout: timeout}
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (entities.Room, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return getRoom(r.db.WithContext(ctx), id)
}

func (r *RoomRepository) AddOccupancy(ctx context.Context, id string, delta float64) (entities.Room, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	db := r.db.WithContext(ctx)
	ok, err := addOccupancy(db, id, delta)
	if err != nil || !ok {
		return entities.Room{}, err
	}
	return getRoom(db, id)
}

// Save inserts or replaces a room.
func (r *RoomRepository) Save(ctx context.Context, room entities.Room) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	m := roomModel{ID: room.ID, Name: room.Name, Capacity: room.Capacity, CurrentOccupancy: room.CurrentOccupancy}
	return r.db.WithContext(ctx).Save(&m).Error
}

func getRoom(db *gorm.DB, id string) (entities.Room, error) {
	var m roomModel
	err := db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Room{}, nil
	}
	if err != nil {
		return entities.Room{}, err
	}
	return m.toEntity(), nil
}

// addOccupancy increments in SQL so concurrent writers never lose an update.
func addOccupancy(db *gorm.DB, id string, delta float64) (bool, error) {
	result := db.Model(&roomModel{}).
		Where("id = ?", id).
		Update("current_occupancy", gorm.Expr("current_occupancy + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
