package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// CanonicalProduceRepository persists stored produce on gorm.
type CanonicalProduceRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ interfaces.ICanonicalProduceRepository = (*CanonicalProduceRepository)(nil)

func NewCanonicalProduceRepository(db *gorm.DB, timeout time.Duration) *CanonicalProduceRepository {
	return &CanonicalProduceRepository{db: db, timeout: timeout}
}

func (r *CanonicalProduceRepository) Create(ctx context.Context, p entities.CanonicalProduce) (entities.CanonicalProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := createStoredProduce(r.db.WithContext(ctx), p); err != nil {
		return entities.CanonicalProduce{}, err
	}
	return p, nil
}

func (r *CanonicalProduceRepository) GetByID(ctx context.Context, id string) (entities.CanonicalProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var m storedProduceModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.CanonicalProduce{}, nil
	}
	if err != nil {
		return entities.CanonicalProduce{}, err
	}
	return m.toEntity(), nil
}

func (r *CanonicalProduceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&storedProduceModel{}, "id = ?", id).Error
}

// ListByLegacyID returns the stored produce created from a legacy record.
func (r *CanonicalProduceRepository) ListByLegacyID(ctx context.Context, legacyID string) ([]entities.CanonicalProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var models []storedProduceModel
	if err := r.db.WithContext(ctx).Where("legacy_id = ?", legacyID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entities.CanonicalProduce, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func createStoredProduce(db *gorm.DB, p entities.CanonicalProduce) error {
	m := toStoredProduceModel(p)
	err := db.Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: id=%s", interfaces.ErrDuplicateProduce, p.ID)
	}
	return err
}
