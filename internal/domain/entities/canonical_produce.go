package entities

import (
	"strings"
	"time"
)

// ProduceType is the enumerated produce category of a stored produce record.
type ProduceType string

const (
	ProduceTypeTomatoes   ProduceType = "Tomatoes"
	ProduceTypePotatoes   ProduceType = "Potatoes"
	ProduceTypeOnions     ProduceType = "Onions"
	ProduceTypeCabbages   ProduceType = "Cabbages"
	ProduceTypeCarrots    ProduceType = "Carrots"
	ProduceTypeKales      ProduceType = "Kales"
	ProduceTypeSpinach    ProduceType = "Spinach"
	ProduceTypeMangoes    ProduceType = "Mangoes"
	ProduceTypeAvocados   ProduceType = "Avocados"
	ProduceTypeBananas    ProduceType = "Bananas"
	ProduceTypeOranges    ProduceType = "Oranges"
	ProduceTypePineapples ProduceType = "Pineapples"
	ProduceTypeMaize      ProduceType = "Maize"
	ProduceTypeBeans      ProduceType = "Beans"

	// ProduceTypeOther is the fallback for values outside the enumeration.
	ProduceTypeOther ProduceType = "Other"
)

// ProduceTypes lists every enumerated produce type, Other last.
var ProduceTypes = []ProduceType{
	ProduceTypeTomatoes,
	ProduceTypePotatoes,
	ProduceTypeOnions,
	ProduceTypeCabbages,
	ProduceTypeCarrots,
	ProduceTypeKales,
	ProduceTypeSpinach,
	ProduceTypeMangoes,
	ProduceTypeAvocados,
	ProduceTypeBananas,
	ProduceTypeOranges,
	ProduceTypePineapples,
	ProduceTypeMaize,
	ProduceTypeBeans,
	ProduceTypeOther,
}

// ParseProduceType matches s case-insensitively against ProduceTypes.
func ParseProduceType(s string) (ProduceType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range ProduceTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// ProduceCondition is the four-level condition scale of stored produce.
type ProduceCondition string

const (
	ConditionFresh          ProduceCondition = "Fresh"
	ConditionGood           ProduceCondition = "Good"
	ConditionFair           ProduceCondition = "Fair"
	ConditionNeedsAttention ProduceCondition = "Needs Attention"
)

// StoredProduceStatus is the approval status of stored produce.
type StoredProduceStatus string

const (
	StoredProduceStatusPending  StoredProduceStatus = "Pending"
	StoredProduceStatusApproved StoredProduceStatus = "Approved"
)

// Approval records who approved a stored produce record and when.
type Approval struct {
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
}

// PriceHistoryEntry is one observed price of a stored produce record.
type PriceHistoryEntry struct {
	Price      float64   `json:"price"`
	RecordedAt time.Time `json:"recorded_at"`
	Source     string    `json:"source"`
}

// CanonicalProduce is the stored produce record written by the migration engine.
//
// Storage model (DynamoDB):
//   - PK: id
//   - legacy_id links back to the originating LegacyProduce
type CanonicalProduce struct {
	ID             string              `json:"id,omitempty"`
	LegacyID       string              `json:"legacy_id"`
	ProduceType    ProduceType         `json:"produce_type"`
	Variety        string              `json:"variety,omitempty"`
	Quantity       float64             `json:"quantity"`
	Unit           string              `json:"unit"`
	Condition      ProduceCondition    `json:"condition"`
	EstimatedValue float64             `json:"estimated_value"`
	TargetPrice    float64             `json:"target_price"`
	StockedAt      time.Time           `json:"stocked_at"`
	RoomID         string              `json:"room_id"`
	OwnerID        string              `json:"owner_id"`
	Status         StoredProduceStatus `json:"status"`
	Approval       Approval            `json:"approval"`
	PriceHistory   []PriceHistoryEntry `json:"price_history,omitempty"`
	Provenance     string              `json:"provenance"`
	CreatedAt      time.Time           `json:"created_at"`
}
