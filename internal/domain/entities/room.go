package entities

// Room is a cold-storage room. CurrentOccupancy is expected to equal the sum of
// quantities of the stored produce attributed to the room.
type Room struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Capacity         float64 `json:"capacity"`
	CurrentOccupancy float64 `json:"current_occupancy"`
}

// Overrun reports how far occupancy exceeds capacity, or 0.
func (r Room) Overrun() float64 {
	if r.CurrentOccupancy > r.Capacity {
		return r.CurrentOccupancy - r.Capacity
	}
	return 0
}
