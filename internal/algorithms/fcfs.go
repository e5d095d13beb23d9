package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// fcfs attends exactly one pending load at a time per elevator, chosen in
// enqueue order (oldest tick_created first), and only boards that one load.
type fcfs struct {
	algorithm.Base
	eng      algorithm.Engine
	attended *attendedState
}

func init() {
	mustRegister("FCFS", func(eng algorithm.Engine) algorithm.Algorithm {
		return &fcfs{eng: eng, attended: newAttendedState()}
	})
}

func (a *fcfs) Name() string { return "FCFS" }

func (a *fcfs) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	pending := sortedPendingByTickCreated(a.eng.PendingLoads())
	for _, l := range pending {
		if a.attended.isAttendedElsewhere(l.ID, e.ID()) {
			continue
		}
		a.attended.set(e.ID(), l)
		return l.InitialFloor, true
	}

	a.attended.clear(e.ID())
	return 0, false
}

func (a *fcfs) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	attended, ok := a.attended.get(e.ID())
	return ok && attended.ID == load.ID
}

func (a *fcfs) OnLoadLoad(load *domain.Load, e algorithm.Elevator) {
	if attended, ok := a.attended.get(e.ID()); ok && attended.ID == load.ID {
		a.attended.clear(e.ID())
	}
}

func (a *fcfs) OnLoadRemoved(load *domain.Load) {
	a.attended.clearByLoadID(load.ID)
}

func (a *fcfs) OnElevatorRemoved(e algorithm.Elevator) {
	a.attended.clear(e.ID())
}
