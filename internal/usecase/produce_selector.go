package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"
	"github.com/ondieki1237/stayfresh-sub001/internal/usecase/interfaces"
)

var ErrSelectionFailed = errors.New("selecting legacy produce failed")

// ProduceSelector lists the legacy records eligible for migration and resolves
// their room and owner references. It never writes.
type ProduceSelector struct {
	legacyRepo interfaces.ILegacyProduceRepository
	roomRepo   interfaces.IRoomRepository
	ownerRepo  interfaces.IOwnerRepository
}

func NewProduceSelector(legacyRepo interfaces.ILegacyProduceRepository, roomRepo interfaces.IRoomRepository, ownerRepo interfaces.IOwnerRepository) *ProduceSelector {
	return &ProduceSelector{legacyRepo: legacyRepo, roomRepo: roomRepo, ownerRepo: ownerRepo}
}

// Select returns every record matching filter ordered by creation time. A
// reference that does not exist resolves to nil; any store error is returned
// wrapped in ErrSelectionFailed and aborts the run.
func (s *ProduceSelector) Select(ctx context.Context, filter entities.EligibilityFilter) ([]SelectedProduce, error) {
	records, err := s.legacyRepo.ListEligible(ctx, filter)
	if err != nil {
		log.Printf("[migration][selector] list eligible failed err=%v", err)
		return nil, fmt.Errorf("%w: %w", ErrSelectionFailed, err)
	}

	rooms := map[string]*entities.Room{}
	owners := map[string]*entities.Owner{}
	selected := make([]SelectedProduce, 0, len(records))
	for _, rec := range records {
		// Stores may filter loosely (e.g. a scan filter); the predicate is authoritative.
		if !filter.Matches(rec) {
			log.Printf("[migration][selector] dropping ineligible record legacy_id=%s status=%s sold=%t", rec.ID, rec.Status, rec.Sold)
			continue
		}

		room, err := s.resolveRoom(ctx, rooms, rec.RoomID)
		if err != nil {
			log.Printf("[migration][selector] room lookup failed legacy_id=%s room_id=%s err=%v", rec.ID, rec.RoomID, err)
			return nil, fmt.Errorf("%w: room %s: %w", ErrSelectionFailed, rec.RoomID, err)
		}
		owner, err := s.resolveOwner(ctx, owners, rec.OwnerID)
		if err != nil {
			log.Printf("[migration][selector] owner lookup failed legacy_id=%s owner_id=%s err=%v", rec.ID, rec.OwnerID, err)
			return nil, fmt.Errorf("%w: owner %s: %w", ErrSelectionFailed, rec.OwnerID, err)
		}
		selected = append(selected, SelectedProduce{Legacy: rec, Room: room, Owner: owner})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i].Legacy, selected[j].Legacy
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return selected, nil
}

func (s *ProduceSelector) resolveRoom(ctx context.Context, cache map[string]*entities.Room, id string) (*entities.Room, error) {
	if id == "" {
		return nil, nil
	}
	if r, ok := cache[id]; ok {
		return r, nil
	}
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var r *entities.Room
	if room.ID != "" {
		r = &room
	}
	cache[id] = r
	return r, nil
}

func (s *ProduceSelector) resolveOwner(ctx context.Context, cache map[string]*entities.Owner, id string) (*entities.Owner, error) {
	if id == "" {
		return nil, nil
	}
	if o, ok := cache[id]; ok {
		return o, nil
	}
	owner, err := s.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var o *entities.Owner
	if owner.ID != "" {
		o = &owner
	}
	cache[id] = o
	return o, nil
}
