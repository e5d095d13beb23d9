package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// cscan always starts sweeping UP; on reaching the top it returns to the
// bottom servicing nothing along the way, then resumes the UP sweep. The
// return leg is modeled as an ordinary multi-tick descent with pickups
// disabled throughout (PreLoadCheck always false while heading down),
// respecting the engine's one-floor-per-tick move invariant while still
// servicing nothing on the way back down.
type cscan struct {
	algorithm.Base
	eng       algorithm.Engine
	direction *directionState
	attended  *attendedState
}

func init() {
	mustRegister("C-SCAN", func(eng algorithm.Engine) algorithm.Algorithm {
		return &cscan{eng: eng, direction: newDirectionState(), attended: newAttendedState()}
	})
}

func (a *cscan) Name() string { return "C-SCAN" }

func (a *cscan) OnElevatorAdded(e algorithm.Elevator) {
	a.direction.set(e.ID(), domain.DirectionUp)
}

func (a *cscan) OnElevatorRemoved(e algorithm.Elevator) {
	a.direction.remove(e.ID())
	a.attended.clear(e.ID())
}

func (a *cscan) OnElevatorMove(e algorithm.Elevator) {
	floors := domain.Floor(a.eng.Floors())
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	if e.CurrentFloor() >= floors && dir == domain.DirectionUp {
		a.direction.set(e.ID(), domain.DirectionDown)
	} else if e.CurrentFloor() <= 1 && dir == domain.DirectionDown {
		a.direction.set(e.ID(), domain.DirectionUp)
	}
}

func (a *cscan) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	dir := a.direction.get(e.ID(), domain.DirectionUp)
	if dir == domain.DirectionDown {
		return domain.NewFloor(1), true
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

func (a *cscan) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	if a.attended.isAttendedElsewhere(load.ID, e.ID()) {
		return false
	}
	return a.direction.get(e.ID(), domain.DirectionUp) == domain.DirectionUp
}

func (a *cscan) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *cscan) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}
