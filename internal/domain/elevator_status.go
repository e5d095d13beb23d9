package domain

// ElevatorStatus is a point-in-time snapshot of an elevator, used by the
// manager to report state to external consumers without exposing the live,
// mutable Elevator.
type ElevatorStatus struct {
	ID           int       `json:"id"`
	CurrentFloor Floor     `json:"current_floor"`
	Destination  *Floor    `json:"destination,omitempty"`
	Direction    Direction `json:"direction"`
	Load         int       `json:"load"`
	LoadCount    int       `json:"load_count"`
	Enabled      bool      `json:"enabled"`
}

// NewElevatorStatus creates a new elevator status snapshot.
func NewElevatorStatus(id int, currentFloor Floor, destination *Floor, load, loadCount int, enabled bool) ElevatorStatus {
	direction := DirectionNone
	if destination != nil {
		direction = DirectionBetween(currentFloor, *destination)
	}
	return ElevatorStatus{
		ID:           id,
		CurrentFloor: currentFloor,
		Destination:  destination,
		Direction:    direction,
		Load:         load,
		LoadCount:    loadCount,
		Enabled:      enabled,
	}
}

// IsIdle returns true if the elevator currently has no destination.
func (es ElevatorStatus) IsIdle() bool {
	return es.Destination == nil
}
