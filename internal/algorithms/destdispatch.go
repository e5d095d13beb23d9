package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// destdispatch attends the nearest pending load by initial floor, then also
// admits any other pending load whose destination falls within a
// zoneRadius = ceil(20*floors/|loads|) of the attended load's destination,
// where |loads| is every pending-plus-carried load in the simulation, not
// just this elevator's own pending set. With zero total loads the radius is
// treated as unbounded.
type destdispatch struct {
	algorithm.Base
	eng      algorithm.Engine
	attended *attendedState
}

func init() {
	mustRegister("Destination Dispatch", func(eng algorithm.Engine) algorithm.Algorithm {
		return &destdispatch{eng: eng, attended: newAttendedState()}
	})
}

func (a *destdispatch) Name() string { return "Destination Dispatch" }

func (a *destdispatch) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	pending := a.attended.unattendedBy(a.eng.PendingLoads(), e.ID())
	load, ok := nearestPendingByInitialFloor(pending, e.CurrentFloor())
	if !ok {
		a.attended.clear(e.ID())
		return 0, false
	}

	a.attended.set(e.ID(), load)
	return load.InitialFloor, true
}

func (a *destdispatch) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	if a.attended.isAttendedElsewhere(load.ID, e.ID()) {
		return false
	}
	attended, ok := a.attended.get(e.ID())
	if !ok {
		return false
	}
	if attended.ID == load.ID {
		return true
	}

	radius := destinationDispatchZoneRadius(a.eng.Floors(), a.eng.TotalLoads())
	return load.DestinationFloor.Distance(attended.DestinationFloor) <= radius
}

func (a *destdispatch) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *destdispatch) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}

func (a *destdispatch) OnElevatorRemoved(e algorithm.Elevator) {
	a.attended.clear(e.ID())
}
