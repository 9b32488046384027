package relational

import (
	"context"
	"errors"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// LegacyProduceRepository implements the legacy produce store on gorm.
type LegacyProduceRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ interfaces.ILegacyProduceRepository = (*LegacyProduceRepository)(nil)

func NewLegacyProduceRepository(db *gorm.DB, timeout time.Duration) *LegacyProduceRepository {
	return &LegacyProduceRepository{db: db, timeout: timeout}
}

func (r *LegacyProduceRepository) ListEligible(ctx context.Context, filter entities.EligibilityFilter) ([]entities.LegacyProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if len(filter.Statuses) == 0 {
		return nil, nil
	}
	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}

	q := r.db.WithContext(ctx).Where("status IN ?", statuses)
	if !filter.IncludeSold {
		q = q.Where("sold = ?", false)
	}

	var models []legacyProduceModel
	if err := q.Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entities.LegacyProduce, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *LegacyProduceRepository) Claim(ctx context.Context, p entities.LegacyProduce, token string) (entities.LegacyProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).Model(&legacyProduceModel{}).
		Where("id = ? AND version = ? AND status = ?", p.ID, p.Version, string(p.Status)).
		Updates(map[string]any{
			"claim_token": token,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return entities.LegacyProduce{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.LegacyProduce{}, interfaces.ErrClaimLost
	}

	var m legacyProduceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", p.ID).Error; err != nil {
		return entities.LegacyProduce{}, err
	}
	return m.toEntity(), nil
}

func (r *LegacyProduceRepository) Release(ctx context.Context, id, token string) error {
	return r.updateClaimed(ctx, id, token, map[string]any{
		"claim_token": "",
		"version":     gorm.Expr("version + 1"),
	})
}

func (r *LegacyProduceRepository) MarkMigrated(ctx context.Context, id, token, notes string) error {
	return r.updateClaimed(ctx, id, token, map[string]any{
		"status":      string(entities.LegacyStatusRemoved),
		"notes":       notes,
		"claim_token": "",
		"version":     gorm.Expr("version + 1"),
	})
}

func (r *LegacyProduceRepository) updateClaimed(ctx context.Context, id, token string, values map[string]any) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if token == "" {
		return interfaces.ErrClaimLost
	}
	result := r.db.WithContext(ctx).Model(&legacyProduceModel{}).
		Where("id = ? AND claim_token = ?", id, token).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return interfaces.ErrClaimLost
	}
	return nil
}

// Insert stores a legacy record as-is. It is used to load fixtures and imports.
func (r *LegacyProduceRepository) Insert(ctx context.Context, p entities.LegacyProduce) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	m := toLegacyProduceModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

// GetByID returns a zero value when the record does not exist.
func (r *LegacyProduceRepository) GetByID(ctx context.Context, id string) (entities.LegacyProduce, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var m legacyProduceModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.LegacyProduce{}, nil
	}
	if err != nil {
		return entities.LegacyProduce{}, err
	}
	return m.toEntity(), nil
}
