package algorithms

import (
	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// rolling ignores any pending-load key entirely: each elevator simply
// bounces between the two terminal floors, flipping direction on arrival; a
// load only boards if its travel direction matches the elevator's current
// sweep.
type rolling struct {
	algorithm.Base
	eng       algorithm.Engine
	direction *directionState
}

func init() {
	mustRegister("Rolling", func(eng algorithm.Engine) algorithm.Algorithm {
		return &rolling{eng: eng, direction: newDirectionState()}
	})
}

func (a *rolling) Name() string { return "Rolling" }

func (a *rolling) OnElevatorAdded(e algorithm.Elevator) {
	initial := domain.DirectionUp
	if a.eng.Intn(2) == 1 {
		initial = domain.DirectionDown
	}
	a.direction.set(e.ID(), initial)
}

func (a *rolling) OnElevatorRemoved(e algorithm.Elevator) {
	a.direction.remove(e.ID())
}

func (a *rolling) OnElevatorMove(e algorithm.Elevator) {
	floors := domain.Floor(a.eng.Floors())
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	if e.CurrentFloor() >= floors && dir == domain.DirectionUp {
		a.direction.set(e.ID(), domain.DirectionDown)
	} else if e.CurrentFloor() <= 1 && dir == domain.DirectionDown {
		a.direction.set(e.ID(), domain.DirectionUp)
	}
}

func (a *rolling) GetNewDestination(e algorithm.Elevator) (domain.Floor, bool) {
	if dest, ok := closestOnboardDestination(e); ok {
		return dest, true
	}

	dir := a.direction.get(e.ID(), domain.DirectionUp)
	if dir == domain.DirectionUp {
		return domain.Floor(a.eng.Floors()), true
	}
	return domain.NewFloor(1), true
}

func (a *rolling) PreLoadCheck(load *domain.Load, e algorithm.Elevator) bool {
	dir := a.direction.get(e.ID(), domain.DirectionUp)
	loadDir := domain.DirectionBetween(load.InitialFloor, load.DestinationFloor)
	return loadDir == dir
}
