package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// scan services pending loads oldest-created-first while sweeping in one
// direction; the sweep flips at the top/bottom floor; only loads traveling
// the same direction as the current sweep are admitted.
type scan struct {
	algorithm.Base
	eng       algorithm.Engine
	direction *directionState
	attended  *attendedState
}

func init() {
	mustRegister("SCAN", func(eng algorithm.Engine) algorithm.Algorithm {
		return &scan{eng: eng, direction: newDirectionState(), attended: newAttendedState()}
	})
}

func (a *scan) Name() string { return "SCAN" }

func (a *scan) OnElevatorAdded(e algorithm.Elevator) {
	a.direction.set(e.ID(), domain.DirectionUp)
}

func (a *scan) OnElevatorRemoved(e algorithm.Elevator) {
	a.direction.remove(e.ID())
	a.attended.clear(e.ID())
}

func (a *scan) OnElevatorMove(e algorithm.Elevator) {
	a.flipAtTerminal(e)
}

func (a *scan) flipAtTerminal(e algorithm.Elevator) {
	floors := domain.Floor(a.eng.Floors())
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	if e.CurrentFloor() >= floors && dir == domain.DirectionUp {
		a.direction.set(e.ID(), domain.DirectionDown)
	} else if e.CurrentFloor() <= 1 && dir == domain.DirectionDown {
		a.direction.set(e.ID(), domain.DirectionUp)
	}
}

func (a *scan) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	candidates := a.attended.unattendedBy(a.eng.PendingLoads(), e.ID())
	pending := sortedPendingByTickCreated(candidates)
	if len(pending) == 0 {
		a.attended.clear(e.ID())
		return 0, false
	}
	a.attended.set(e.ID(), pending[0])
	return pending[0].InitialFloor, true
}

func (a *scan) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	if a.attended.isAttendedElsewhere(load.ID, e.ID()) {
		return false
	}
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	loadDir := domain.DirectionBetween(load.InitialFloor, load.DestinationFloor)
	return loadDir == dir
}

func (a *scan) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *scan) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}
