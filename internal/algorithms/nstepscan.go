package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// nstepscan behaves like SCAN, but each elevator is restricted to a
// contiguous zone of [1, floors] computed by splitting the range into
// len(elevators) near-equal slices (splitArray). Zones are recomputed
// whenever the elevator population or floor count changes.
type nstepscan struct {
	algorithm.Base
	eng       algorithm.Engine
	direction *directionState
	zones     *zoneState
	attended  *attendedState
}

func init() {
	mustRegister("N-Step SCAN", func(eng algorithm.Engine) algorithm.Algorithm {
		a := &nstepscan{eng: eng, direction: newDirectionState(), zones: newZoneState(), attended: newAttendedState()}
		a.zones.recompute(eng)
		return a
	})
}

func (a *nstepscan) Name() string { return "N-Step SCAN" }

func (a *nstepscan) OnElevatorAdded(e algorithm.Elevator) {
	a.direction.set(e.ID(), domain.DirectionUp)
	a.zones.recompute(a.eng)
}

func (a *nstepscan) OnElevatorRemoved(e algorithm.Elevator) {
	a.direction.remove(e.ID())
	a.attended.clear(e.ID())
	a.zones.recompute(a.eng)
}

func (a *nstepscan) OnFloorsChanged(int) {
	a.zones.recompute(a.eng)
}

func (a *nstepscan) OnElevatorMove(e algorithm.Elevator) {
	min, max, ok := a.zones.boundsFor(e.ID())
	if !ok {
		return
	}
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	if e.CurrentFloor() >= max && dir == domain.DirectionUp {
		a.direction.set(e.ID(), domain.DirectionDown)
	} else if e.CurrentFloor() <= min && dir == domain.DirectionDown {
		a.direction.set(e.ID(), domain.DirectionUp)
	}
}

func (a *nstepscan) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if target, ok := a.zones.takeReposition(e.ID()); ok {
		return target, true
	}

	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	inZone := a.zones.filterInZone(e.ID(), a.eng.PendingLoads())
	candidates := a.attended.unattendedBy(inZone, e.ID())
	pending := sortedPendingByTickCreated(candidates)
	if len(pending) == 0 {
		a.attended.clear(e.ID())
		return 0, false
	}
	a.attended.set(e.ID(), pending[0])
	return pending[0].InitialFloor, true
}

func (a *nstepscan) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	if !a.zones.inZone(e.ID(), load.InitialFloor) {
		return false
	}
	if a.attended.isAttendedElsewhere(load.ID, e.ID()) {
		return false
	}
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	loadDir := domain.DirectionBetween(load.InitialFloor, load.DestinationFloor)
	return loadDir == dir
}

func (a *nstepscan) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *nstepscan) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}
