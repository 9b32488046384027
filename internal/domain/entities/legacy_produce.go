package entities

import "time"

// LegacyStatus is the lifecycle status of a legacy produce record.
type LegacyStatus string

const (
	LegacyStatusActive  LegacyStatus = "Active"
	LegacyStatusListed  LegacyStatus = "Listed"
	LegacyStatusSold    LegacyStatus = "Sold"
	LegacyStatusRemoved LegacyStatus = "Removed"
)

// LegacyProduce is a produce record stored under the old, loosely validated schema.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Optional numeric fields are pointers so that "missing" stays distinguishable
// from zero. Version is bumped on every write and backs the optimistic claim
// taken before a record is migrated.
type LegacyProduce struct {
	ID                  string       `json:"id"`
	ProduceType         string       `json:"produce_type"`
	Variety             string       `json:"variety,omitempty"`
	Quantity            *float64     `json:"quantity,omitempty"`
	Unit                string       `json:"unit,omitempty"`
	Condition           string       `json:"condition,omitempty"`
	CurrentMarketPrice  *float64     `json:"current_market_price,omitempty"`
	ExpectedPeakPrice   *float64     `json:"expected_peak_price,omitempty"`
	MinimumSellingPrice *float64     `json:"minimum_selling_price,omitempty"`
	RoomID              string       `json:"room_id"`
	OwnerID             string       `json:"owner_id"`
	StorageDate         *time.Time   `json:"storage_date,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	Status              LegacyStatus `json:"status"`
	Sold                bool         `json:"sold"`
	Notes               string       `json:"notes,omitempty"`
	ClaimToken          string       `json:"claim_token,omitempty"`
	Version             int64        `json:"version"`
}

// AppendNote returns the record notes with note appended on a new line.
// Existing notes are never overwritten.
func (p LegacyProduce) AppendNote(note string) string {
	if p.Notes == "" {
		return note
	}
	return p.Notes + "\n" + note
}

// EligibilityFilter is the predicate selecting legacy records for migration.
type EligibilityFilter struct {
	Statuses    []LegacyStatus
	IncludeSold bool
}

// DefaultEligibilityFilter selects unsold Active and Listed records.
func DefaultEligibilityFilter() EligibilityFilter {
	return EligibilityFilter{Statuses: []LegacyStatus{LegacyStatusActive, LegacyStatusListed}}
}

// Matches reports whether p satisfies the filter.
func (f EligibilityFilter) Matches(p LegacyProduce) bool {
	// Removed records have already left storage and are never reselected.
	if p.Status == LegacyStatusRemoved {
		return false
	}
	if (p.Sold || p.Status == LegacyStatusSold) && !f.IncludeSold {
		return false
	}
	for _, s := range f.Statuses {
		if p.Status == s {
			return true
		}
	}
	return false
}
