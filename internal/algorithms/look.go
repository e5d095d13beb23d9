package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// look behaves like SCAN, except the pending-load key is
// nearest-by-initial-floor rather than oldest, and the sweep direction is
// cleared (rather than merely flipped) whenever the elevator runs dry, so
// the next pickup may start a sweep in either direction.
type look struct {
	algorithm.Base
	eng       algorithm.Engine
	direction *directionState
	attended  *attendedState
}

func init() {
	mustRegister("LOOK", func(eng algorithm.Engine) algorithm.Algorithm {
		return &look{eng: eng, direction: newDirectionState(), attended: newAttendedState()}
	})
}

func (a *look) Name() string { return "LOOK" }

func (a *look) OnElevatorRemoved(e algorithm.Elevator) {
	a.direction.remove(e.ID())
	a.attended.clear(e.ID())
}

func (a *look) OnElevatorMove(e algorithm.Elevator) {
	floors := domain.Floor(a.eng.Floors())
	dir := a.direction.get(e.ID(), domain.DirectionNone)
	if e.CurrentFloor() >= floors && dir == domain.DirectionUp {
		a.direction.set(e.ID(), domain.DirectionDown)
	} else if e.CurrentFloor() <= 1 && dir == domain.DirectionDown {
		a.direction.set(e.ID(), domain.DirectionUp)
	}
}

func (a *look) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	candidates := a.attended.unattendedBy(a.eng.PendingLoads(), e.ID())
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

func (a *look) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
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

func (a *look) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *look) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}
