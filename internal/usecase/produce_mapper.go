package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
)

const (
	defaultUnit        = "kg"
	priceSourceLegacy  = "legacy-migration"
	provenanceTemplate = "Migrated from legacy produce %s"
)

// legacyConditions maps legacy condition labels onto the canonical scale.
// Keys are lower-case.
var legacyConditions = map[string]entities.ProduceCondition{
	"excellent": entities.ConditionFresh,
	"fresh":     entities.ConditionFresh,
	"good":      entities.ConditionGood,
	"fair":      entities.ConditionFair,
	"poor":      entities.ConditionNeedsAttention,
	"spoiled":   entities.ConditionNeedsAttention,
}

// SelectedProduce is a legacy record resolved with its room and owner.
// Room and Owner are nil when the reference did not resolve.
type SelectedProduce struct {
	Legacy entities.LegacyProduce
	Room   *entities.Room
	Owner  *entities.Owner
}

// ProduceDraft is the mapped, not yet accepted, stored produce of a legacy record.
type ProduceDraft struct {
	Legacy  entities.LegacyProduce
	Produce entities.CanonicalProduce
	Room    *entities.Room
	Owner   *entities.Owner

	// QuantityMissing is set when the legacy record had no quantity at all.
	QuantityMissing bool
}

// MapLegacyProduce maps a legacy record onto the stored produce schema.
// It never fails: unknown produce types become Other and unknown conditions
// become Good. The draft has no ID; one is assigned when it is persisted.
func MapLegacyProduce(rec SelectedProduce, approval entities.Approval) ProduceDraft {
	l := rec.Legacy
	quantity := valueOr(l.Quantity, 0)
	marketPrice := valueOr(l.CurrentMarketPrice, 0)
	stockedAt := StockedAt(l)

	unit := strings.TrimSpace(l.Unit)
	if unit == "" {
		unit = defaultUnit
	}

	p := entities.CanonicalProduce{
		LegacyID:       l.ID,
		ProduceType:    NormalizeProduceType(l.ProduceType),
		Variety:        strings.TrimSpace(l.Variety),
		Quantity:       quantity,
		Unit:           unit,
		Condition:      NormalizeCondition(l.Condition),
		EstimatedValue: estimatedValue(quantity, marketPrice),
		TargetPrice:    ResolveTargetPrice(l),
		StockedAt:      stockedAt,
		RoomID:         l.RoomID,
		OwnerID:        l.OwnerID,
		Status:         entities.StoredProduceStatusApproved,
		Approval:       approval,
		Provenance:     fmt.Sprintf(provenanceTemplate, l.ID),
	}
	if l.CurrentMarketPrice != nil {
		p.PriceHistory = []entities.PriceHistoryEntry{{
			Price:      marketPrice,
			RecordedAt: stockedAt,
			Source:     priceSourceLegacy,
		}}
	}

	return ProduceDraft{
		Legacy:          l,
		Produce:         p,
		Room:            rec.Room,
		Owner:           rec.Owner,
		QuantityMissing: l.Quantity == nil,
	}
}

// NormalizeProduceType matches raw case-insensitively against the enumerated
// produce types, falling back to Other.
func NormalizeProduceType(raw string) entities.ProduceType {
	if t, ok := entities.ParseProduceType(raw); ok {
		return t
	}
	return entities.ProduceTypeOther
}

// NormalizeCondition maps a legacy condition label, defaulting to Good.
func NormalizeCondition(raw string) entities.ProduceCondition {
	if c, ok := legacyConditions[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c
	}
	return entities.ConditionGood
}

// ResolveTargetPrice prefers the expected peak price, then the minimum selling
// price, then the current market price.
func ResolveTargetPrice(l entities.LegacyProduce) float64 {
	for _, p := range []*float64{l.ExpectedPeakPrice, l.MinimumSellingPrice, l.CurrentMarketPrice} {
		if p != nil {
			return *p
		}
	}
	return 0
}

// StockedAt is the legacy storage date, or the creation date when unset.
func StockedAt(l entities.LegacyProduce) time.Time {
	if l.StorageDate != nil && !l.StorageDate.IsZero() {
		return *l.StorageDate
	}
	return l.CreatedAt
}

func estimatedValue(quantity, price float64) float64 {
	v := quantity * price
	if v < 0 {
		return 0
	}
	return v
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
