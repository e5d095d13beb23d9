package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// clook behaves like C-SCAN but its return leg only travels as far down as
// the lowest pending pickup (or floor 1 if none), rather than always to
// the bottom — the same "don't travel further than necessary" refinement
// LOOK applies over SCAN. The UP sweep resumes once the elevator is at or
// below that lowest pickup.
type clook struct {
	algorithm.Base
	eng       algorithm.Engine
	direction *directionState
	attended  *attendedState
}

func init() {
	mustRegister("C-LOOK", func(eng algorithm.Engine) algorithm.Algorithm {
		return &clook{eng: eng, direction: newDirectionState(), attended: newAttendedState()}
	})
}

func (a *clook) Name() string { return "C-LOOK" }

func (a *clook) OnElevatorAdded(e algorithm.Elevator) {
	a.direction.set(e.ID(), domain.DirectionUp)
}

func (a *clook) OnElevatorRemoved(e algorithm.Elevator) {
	a.direction.remove(e.ID())
	a.attended.clear(e.ID())
}

func (a *clook) OnElevatorMove(e algorithm.Elevator) {
	floors := domain.Floor(a.eng.Floors())
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	if e.CurrentFloor() >= floors && dir == domain.DirectionUp {
		a.direction.set(e.ID(), domain.DirectionDown)
	} else if e.CurrentFloor() <= 1 && dir == domain.DirectionDown {
		a.direction.set(e.ID(), domain.DirectionUp)
	}
}

func (a *clook) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	candidates := a.attended.unattendedBy(a.eng.PendingLoads(), e.ID())
	dir := a.direction.get(e.ID(), domain.DirectionUp)

	if dir == domain.DirectionDown {
		lowest, ok := lowestInitialFloorLoad(candidates)
		if !ok {
			a.attended.clear(e.ID())
			return domain.NewFloor(1), true
		}
		if lowest.InitialFloor < e.CurrentFloor() {
			a.attended.set(e.ID(), lowest)
			return lowest.InitialFloor, true
		}
		// The return leg is over: resume the UP sweep from here.
		a.direction.set(e.ID(), domain.DirectionUp)
	}

	load, ok := nearestPendingByInitialFloor(candidates, e.CurrentFloor())
	if !ok {
		a.attended.clear(e.ID())
		return 0, false
	}
	a.attended.set(e.ID(), load)
	return load.InitialFloor, true
}

func (a *clook) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	if a.attended.isAttendedElsewhere(load.ID, e.ID()) {
		return false
	}
	return a.direction.get(e.ID(), domain.DirectionUp) == domain.DirectionUp
}

func (a *clook) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *clook) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}

func lowestInitialFloorLoad(loads []*domain.Load) (*domain.Load, bool) {
	if len(loads) == 0 {
		return nil, false
	}
	lowest := loads[0]
	for _, l := range loads[1:] {
		if l.InitialFloor < lowest.InitialFloor {
			lowest = l
		}
	}
	return lowest, true
}
