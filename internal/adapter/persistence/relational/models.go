package relational

import (
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"

	"gorm.io/gorm"
)

type legacyProduceModel struct {
	ID                  string `gorm:"primaryKey"`
	ProduceType         string
	Variety             string
	Quantity            *float64
	Unit                string
	Condition           string
	CurrentMarketPrice  *float64
	ExpectedPeakPrice   *float64
	MinimumSellingPrice *float64
	RoomID              string `gorm:"index"`
	OwnerID             string `gorm:"index"`
	StorageDate         *time.Time
	CreatedAt           time.Time `gorm:"index"`
	Status              string    `gorm:"index"`
	Sold                bool
	Notes               string
	ClaimToken          string
	Version             int64 `gorm:"default:0"`
}

func (legacyProduceModel) TableName() string { return "legacy_produce" }

type storedProduceModel struct {
	ID             string `gorm:"primaryKey"`
	LegacyID       string `gorm:"index"`
	ProduceType    string `gorm:"index"`
	Variety        string
	Quantity       float64
	Unit           string
	Condition      string
	EstimatedValue float64
	TargetPrice    float64
	StockedAt      time.Time
	RoomID         string `gorm:"index"`
	OwnerID        string `gorm:"index"`
	Status         string
	ApprovedBy     string
	ApprovedAt     time.Time
	PriceHistory   []entities.PriceHistoryEntry `gorm:"serializer:json"`
	Provenance     string
	CreatedAt      time.Time
}

func (storedProduceModel) TableName() string { return "stored_produce" }

type roomModel struct {
	ID               string `gorm:"primaryKey"`
	Name             string
	Capacity         float64
	CurrentOccupancy float64
}

func (roomModel) TableName() string { return "rooms" }

type ownerModel struct {
	ID    string `gorm:"primaryKey"`
	Name  string
	Email string
}

func (ownerModel) TableName() string { return "farmers" }

// Migrate creates or updates the tables used by the relational store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&legacyProduceModel{}, &storedProduceModel{}, &roomModel{}, &ownerModel{})
}

func toLegacyProduceModel(p entities.LegacyProduce) legacyProduceModel {
	return legacyProduceModel{
		ID:                  p.ID,
		ProduceType:         p.ProduceType,
		Variety:             p.Variety,
		Quantity:            p.Quantity,
		Unit:                p.Unit,
		Condition:           p.Condition,
		CurrentMarketPrice:  p.CurrentMarketPrice,
		ExpectedPeakPrice:   p.ExpectedPeakPrice,
		MinimumSellingPrice: p.MinimumSellingPrice,
		RoomID:              p.RoomID,
		OwnerID:             p.OwnerID,
		StorageDate:         p.StorageDate,
		CreatedAt:           p.CreatedAt,
		Status:              string(p.Status),
		Sold:                p.Sold,
		Notes:               p.Notes,
		ClaimToken:          p.ClaimToken,
		Version:             p.Version,
	}
}

func (m legacyProduceModel) toEntity() entities.LegacyProduce {
	return entities.LegacyProduce{
		ID:                  m.ID,
		ProduceType:         m.ProduceType,
		Variety:             m.Variety,
		Quantity:            m.Quantity,
		Unit:                m.Unit,
		Condition:           m.Condition,
		CurrentMarketPrice:  m.CurrentMarketPrice,
		ExpectedPeakPrice:   m.ExpectedPeakPrice,
		MinimumSellingPrice: m.MinimumSellingPrice,
		RoomID:              m.RoomID,
		OwnerID:             m.OwnerID,
		StorageDate:         m.StorageDate,
		CreatedAt:           m.CreatedAt,
		Status:              entities.LegacyStatus(m.Status),
		Sold:                m.Sold,
		Notes:               m.Notes,
		ClaimToken:          m.ClaimToken,
		Version:             m.Version,
	}
}

func toStoredProduceModel(p entities.CanonicalProduce) storedProduceModel {
	return storedProduceModel{
		ID:             p.ID,
		LegacyID:       p.LegacyID,
		ProduceType:    string(p.ProduceType),
		Variety:        p.Variety,
		Quantity:       p.Quantity,
		Unit:           p.Unit,
		Condition:      string(p.Condition),
		EstimatedValue: p.EstimatedValue,
		TargetPrice:    p.TargetPrice,
		StockedAt:      p.StockedAt,
		RoomID:         p.RoomID,
		OwnerID:        p.OwnerID,
		Status:         string(p.Status),
		ApprovedBy:     p.Approval.ApprovedBy,
		ApprovedAt:     p.Approval.ApprovedAt,
		PriceHistory:   p.PriceHistory,
		Provenance:     p.Provenance,
		CreatedAt:      p.CreatedAt,
	}
}

func (m storedProduceModel) toEntity() entities.CanonicalProduce {
	return entities.CanonicalProduce{
		ID:             m.ID,
		LegacyID:       m.LegacyID,
		ProduceType:    entities.ProduceType(m.ProduceType),
		Variety:        m.Variety,
		Quantity:       m.Quantity,
		Unit:           m.Unit,
		Condition:      entities.ProduceCondition(m.Condition),
		EstimatedValue: m.EstimatedValue,
		TargetPrice:    m.TargetPrice,
		StockedAt:      m.StockedAt,
		RoomID:         m.RoomID,
		OwnerID:        m.OwnerID,
		Status:         entities.StoredProduceStatus(m.Status),
		Approval:       entities.Approval{ApprovedBy: m.ApprovedBy, ApprovedAt: m.ApprovedAt},
		PriceHistory:   m.PriceHistory,
		Provenance:     m.Provenance,
		CreatedAt:      m.CreatedAt,
	}
}

func (m roomModel) toEntity() entities.Room {
	return entities.Room{ID: m.ID, Name: m.Name, Capacity: m.Capacity, CurrentOccupancy: m.CurrentOccupancy}
}
