package engine

import (
	"github.com/slavakukuyev/elevator-go/internal/actionqueue"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// Elevator is one cabin owned by an Engine: its physical position, the loads
// it currently carries, and its action queue. It satisfies algorithm.Elevator
// so scheduling policies can inspect it without importing this package.
type Elevator struct {
	id           int
	currentFloor domain.Floor
	destination  *domain.Floor
	loads        []*domain.Load
	enabled      bool
	queue        *actionqueue.Queue
}

func newElevator(id int, floor domain.Floor) *Elevator {
	return &Elevator{
		id:           id,
		currentFloor: floor,
		enabled:      true,
		queue:        actionqueue.New(),
	}
}

func (e *Elevator) ID() int                    { return e.id }
func (e *Elevator) CurrentFloor() domain.Floor { return e.currentFloor }
func (e *Elevator) Destination() *domain.Floor { return e.destination }
func (e *Elevator) Enabled() bool              { return e.enabled }

func (e *Elevator) Loads() []*domain.Load {
	out := make([]*domain.Load, len(e.loads))
	copy(out, e.loads)
	return out
}

func (e *Elevator) LoadWeight() int {
	total := 0
	for _, l := range e.loads {
		total += l.Weight
	}
	return total
}

// Status returns a point-in-time snapshot for external reporting.
func (e *Elevator) Status() domain.ElevatorStatus {
	return domain.NewElevatorStatus(e.id, e.currentFloor, e.destination, e.LoadWeight(), len(e.loads), e.enabled)
}

func (e *Elevator) setDestination(f *domain.Floor) {
	e.destination = f
}

func (e *Elevator) addLoad(l *domain.Load) {
	e.loads = append(e.loads, l)
}

func (e *Elevator) removeLoad(loadID int) {
	for i, l := range e.loads {
		if l.ID == loadID {
			e.loads = append(e.loads[:i], e.loads[i+1:]...)
			return
		}
	}
}

func (e *Elevator) hasLoad(loadID int) bool {
	for _, l := range e.loads {
		if l.ID == loadID {
			return true
		}
	}
	return false
}
