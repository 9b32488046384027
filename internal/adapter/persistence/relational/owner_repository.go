package relational

import (
	"context"
	"errors"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type OwnerRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ interfaces.IOwnerRepository = (*OwnerRepository)(nil)

func NewOwnerRepository(db *gorm.DB, timeout time.Duration) *OwnerRepository {
	return &OwnerRepository{db: db, timeout: timeout}
}

func (r *OwnerRepository) GetByID(ctx context.Context, id string) (entities.Owner, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var m ownerModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Owner{}, nil
	}
	if err != nil {
		return entities.Owner{}, err
	}
	return entities.Owner{ID: m.ID, Name: m.Name, Email: m.Email}, nil
}

// Save inserts or replaces an owner.
func (r *OwnerRepository) Save(ctx context.Context, o entities.Owner) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	m := ownerModel{ID: o.ID, Name: o.Name, Email: o.Email}
	return r.db.WithContext(ctx).Save(&m).Error
}
