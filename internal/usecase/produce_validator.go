package usecase

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrDraftRejected      = errors.New("draft rejected")
	ErrMissingQuantity    = errors.New("quantity is missing")
	ErrNegativeQuantity   = errors.New("quantity is negative")
	ErrInvalidQuantity    = errors.New("quantity is not a finite number")
	ErrUnresolvedRoom     = errors.New("storage room could not be resolved")
	ErrUnresolvedOwner    = errors.New("owner could not be resolved")
	ErrMissingProduceType = errors.New("produce type is missing")
	ErrMissingCondition   = errors.New("condition is missing")
)

// ValidateDraft decides whether a mapped draft may be written. Rejections wrap
// both ErrDraftRejected and the specific reason.
func ValidateDraft(d ProduceDraft) error {
	if reason := rejectReason(d); reason != nil {
		return fmt.Errorf("%w: %w", ErrDraftRejected, reason)
	}
	return nil
}

func rejectReason(d ProduceDraft) error {
	q := d.Produce.Quantity
	switch {
	case d.QuantityMissing:
		return ErrMissingQuantity
	case math.IsNaN(q) || math.IsInf(q, 0):
		return ErrInvalidQuantity
	case q < 0:
		return ErrNegativeQuantity
	case d.Room == nil || d.Room.ID == "" || d.Room.ID != d.Produce.RoomID:
		return ErrUnresolvedRoom
	case d.Owner == nil || d.Owner.ID == "" || d.Owner.ID != d.Produce.OwnerID:
		return ErrUnresolvedOwner
	case strings.TrimSpace(string(d.Produce.ProduceType)) == "":
		return ErrMissingProduceType
	case strings.TrimSpace(string(d.Produce.Condition)) == "":
		return ErrMissingCondition
	}
	return nil
}
