package engine

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/slavakukuyev/elevator-go/internal/constants"
	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/slavakukuyev/elevator-go/metrics"
)

// Loop performs exactly one tick: pre_loop, drain each elevator's action
// queue until it yields an ADD_TICK, increment tick_count, post_loop, and
// detect simulation end. It is a no-op (tick_count does not advance) once
// the simulation has already ended or a prior tick aborted with a fatal
// error.
func (e *Engine) Loop() ([]DiffEvent, error) {
	if e.ended || e.fatalErr != nil {
		return nil, e.fatalErr
	}

	start := time.Now()
	defer func() { metrics.TickProcessed(e.algo.Name(), time.Since(start).Seconds()) }()

	e.callHook("PreLoop", e.algo.PreLoop)

	for _, ev := range e.elevators {
		if !ev.enabled {
			continue
		}
		e.drainUntilTick(ev)
		if e.fatalErr != nil {
			return nil, e.fatalErr
		}
	}

	e.tickCount++

	e.callHook("PostLoop", e.algo.PostLoop)

	e.sampleOccupancy()

	if !e.ended && !e.SimulationRunning() {
		e.ended = true
		e.callHook("OnSimulationEnd", e.algo.OnSimulationEnd)
	}

	metrics.SetActiveLoads(e.algo.Name(), len(e.loads))

	events := e.pendingEvents
	e.flushEvents()
	return events, nil
}

// drainUntilTick consumes actions from ev's queue until an ADD_TICK is
// consumed, executing each along the way. It stops early if a fatal error
// is raised by one of the actions.
func (e *Engine) drainUntilTick(ev *Elevator) {
	for {
		action := ev.queue.Get()
		switch action.Type {
		case domain.ActionAddTick:
			return
		case domain.ActionUnloadLoad:
			e.doUnload(ev, action.LoadID)
		case domain.ActionLoadLoad:
			e.doLoad(ev, action.LoadID)
		case domain.ActionMoveElevator:
			e.doMove(ev)
		case domain.ActionRunCycle:
			e.planCycle(ev)
		}
		if e.fatalErr != nil {
			return
		}
	}
}

func (e *Engine) doUnload(ev *Elevator, loadID int) {
	if !ev.hasLoad(loadID) {
		e.logger.Error("unload requested for a load the elevator is not carrying",
			slog.Int("elevator_id", ev.id), slog.Int("load_id", loadID))
		return
	}
	l := e.loads[loadID]
	ev.removeLoad(loadID)
	e.TimeInLift.Record(float64(e.tickCount - l.EnterLiftTick + 1))
	l.ElevatorID = domain.NoElevator
	l.EnterLiftTick = domain.NoElevator
	delete(e.loads, loadID)
	e.latestLoadMoveTick = e.tickCount

	e.emit(DiffEvent{Type: EventLoadUnload, ElevatorID: ev.id, LoadID: loadID})
	e.callHook("OnLoadUnload", func() { e.algo.OnLoadUnload(l, ev) })
	e.callHook("OnLoadRemoved", func() { e.algo.OnLoadRemoved(l) })
}

func (e *Engine) doLoad(ev *Elevator, loadID int) {
	l, ok := e.loads[loadID]
	if !ok {
		e.logger.Error("load requested for an unknown load id", slog.Int("load_id", loadID))
		return
	}
	if ev.LoadWeight()+l.Weight > e.maxLoad {
		// Cycle planning must never admit a load past capacity; reaching
		// here means that invariant was violated, which is always a bug.
		e.fatalErr = domain.NewFullElevatorError("cycle planning admitted a load that exceeds capacity", nil).
			WithContext("elevator_id", ev.id).WithContext("load_id", loadID)
		e.logger.Error("aborting run: full elevator invariant violated",
			slog.Int("elevator_id", ev.id), slog.Int("load_id", loadID))
		return
	}

	ev.addLoad(l)
	l.ElevatorID = ev.id
	l.EnterLiftTick = e.tickCount
	e.WaitTimes.Record(float64(e.tickCount - l.TickCreated))
	e.latestLoadMoveTick = e.tickCount

	e.emit(DiffEvent{Type: EventLoadLoad, ElevatorID: ev.id, LoadID: loadID})
	e.callHook("OnLoadLoad", func() { e.algo.OnLoadLoad(l, ev) })
}

func (e *Engine) doMove(ev *Elevator) {
	if ev.destination == nil {
		e.requestDestination(ev)
		return
	}

	dest := *ev.destination
	switch {
	case dest.IsAbove(ev.currentFloor):
		ev.currentFloor++
	case dest.IsBelow(ev.currentFloor):
		ev.currentFloor--
	default:
		// already there; nothing to move.
	}

	for _, l := range ev.loads {
		l.CurrentFloor = ev.currentFloor
	}

	e.emit(DiffEvent{Type: EventElevatorMove, ElevatorID: ev.id, Floor: ev.currentFloor})
	e.callHook("OnElevatorMove", func() { e.algo.OnElevatorMove(ev) })

	if ev.currentFloor == dest {
		e.requestDestination(ev)
	}
}

func (e *Engine) requestDestination(ev *Elevator) {
	var dest domain.Floor
	var ok bool
	e.callHook("GetNewDestination", func() { dest, ok = e.algo.GetNewDestination(ev) })
	if !ok {
		ev.setDestination(nil)
		return
	}
	ev.setDestination(&dest)
	e.emit(DiffEvent{Type: EventElevatorDestination, ElevatorID: ev.id, Floor: dest})
}

// planCycle implements RUN_CYCLE: unload candidates, then load candidates,
// then travel-and-move, batching door operations in groups of at most
// constants.MaxNumLoadsRemovedPerTick with an ADD_TICK after every batch, and
// one final ADD_TICK if the total isn't already a multiple of that batch size.
func (e *Engine) planCycle(ev *Elevator) {
	doorOpsQueued := 0
	anyDoorOp := false

	queueDoorOp := func(action domain.Action) {
		if !anyDoorOp {
			ev.queue.OpenDoor()
			anyDoorOp = true
		}
		ev.queue.Add(action)
		doorOpsQueued++
		if doorOpsQueued%constants.MaxNumLoadsRemovedPerTick == 0 {
			ev.queue.Tick(1)
		}
	}

	for _, l := range ev.loads {
		if l.DestinationFloor != ev.currentFloor {
			continue
		}
		allow := true
		e.callHook("PreUnloadCheck", func() { allow = e.algo.PreUnloadCheck(l, ev) })
		if !allow {
			continue
		}
		queueDoorOp(domain.NewLoadAction(domain.ActionUnloadLoad, l.ID))
	}

	reserved := 0
	for _, l := range e.PendingLoads() {
		if l.InitialFloor != ev.currentFloor {
			continue
		}
		if ev.LoadWeight()+reserved+l.Weight > e.maxLoad {
			continue
		}
		allow := true
		e.callHook("PreLoadCheck", func() { allow = e.algo.PreLoadCheck(l, ev) })
		if !allow {
			continue
		}
		queueDoorOp(domain.NewLoadAction(domain.ActionLoadLoad, l.ID))
		reserved += l.Weight
	}

	if doorOpsQueued%constants.MaxNumLoadsRemovedPerTick != 0 {
		ev.queue.Tick(1)
	}

	if anyDoorOp {
		ev.queue.CloseDoor()
	}

	ev.queue.Tick(constants.TravelTicks)
	ev.queue.Add(domain.NewAction(domain.ActionMoveElevator))
}

func (e *Engine) sampleOccupancy() {
	if len(e.loads) == 0 {
		return
	}
	for _, ev := range e.elevators {
		if e.maxLoad == 0 {
			continue
		}
		pct := float64(ev.LoadWeight()) / float64(e.maxLoad) * 100
		e.Occupancy.Record(pct)
		metrics.SetElevatorOccupancy(elevatorMetricName(ev.id), pct/100)
	}
}

func elevatorMetricName(id int) string {
	return constants.DefaultElevatorPrefix + "-" + strconv.Itoa(id)
}
