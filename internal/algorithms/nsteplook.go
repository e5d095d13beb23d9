package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// nsteplook combines N-Step SCAN's zone restriction with LOOK's
// nearest-pending selection and empty-direction-clears-filter behavior.
type nsteplook struct {
	algorithm.Base
	eng       algorithm.Engine
	direction *directionState
	zones     *zoneState
	attended  *attendedState
}

func init() {
	mustRegister("N-Step LOOK", func(eng algorithm.Engine) algorithm.Algorithm {
		a := &nsteplook{eng: eng, direction: newDirectionState(), zones: newZoneState(), attended: newAttendedState()}
		a.zones.recompute(eng)
		return a
	})
}

func (a *nsteplook) Name() string { return "N-Step LOOK" }

func (a *nsteplook) OnElevatorAdded(e algorithm.Elevator) {
	a.zones.recompute(a.eng)
}

func (a *nsteplook) OnElevatorRemoved(e algorithm.Elevator) {
	a.direction.remove(e.ID())
	a.attended.clear(e.ID())
	a.zones.recompute(a.eng)
}

func (a *nsteplook) OnFloorsChanged(int) {
	a.zones.recompute(a.eng)
}

func (a *nsteplook) OnElevatorMove(e algorithm.Elevator) {
	min, max, ok := a.zones.boundsFor(e.ID())
	if !ok {
		return
	}
	dir := a.direction.get(e.ID(), domain.DirectionNone)
	if e.CurrentFloor() >= max && dir == domain.DirectionUp {
		a.direction.set(e.ID(), domain.DirectionDown)
	} else if e.CurrentFloor() <= min && dir == domain.DirectionDown {
		a.direction.set(e.ID(), domain.DirectionUp)
	}
}

func (a *nsteplook) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if target, ok := a.zones.takeReposition(e.ID()); ok {
		return target, true
	}

	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	inZone := a.zones.filterInZone(e.ID(), a.eng.PendingLoads())
	candidates := a.attended.unattendedBy(inZone, e.ID())
	load, ok := nearestPendingByInitialFloor(candidates, e.CurrentFloor())
	if !ok {
		a.direction.remove(e.ID())
		a.attended.clear(e.ID())
		return 0, false
	}

	a.direction.set(e.ID(), domain.DirectionBetween(e.CurrentFloor(), load.InitialFloor))
	a.attended.set(e.ID(), load)
	return load.InitialFloor, true
}

func (a *nsteplook) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	if !a.zones.inZone(e.ID(), load.InitialFloor) {
		return false
	}
	if a.attended.isAttendedElsewhere(load.ID, e.ID()) {
		return false
	}
	dir, ok := a.direction.dir[e.ID()]
	if !ok || dir == domain.DirectionNone {
		return true
	}
	loadDir := domain.DirectionBetween(load.InitialFloor, load.DestinationFloor)
	return loadDir == dir
}

func (a *nsteplook) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *nsteplook) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}
