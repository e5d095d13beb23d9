// Package engine implements the deterministic, tick-driven simulation core:
// it owns the building's floors, elevators and loads, advances exactly one
// tick per Loop call, and delegates destination choice and pickup/drop-off
// admission to a pluggable algorithm.Algorithm.
package engine

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/constants"
	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/slavakukuyev/elevator-go/internal/infra/logging"
	"github.com/slavakukuyev/elevator-go/internal/stats"
)

// Engine owns all simulation state: loads hold only a weak reference (the
// id) to their carrying elevator, and elevators hold pointers only to loads
// the engine itself owns.
type Engine struct {
	floors  int
	maxLoad int

	elevators []*Elevator
	loads     map[int]*domain.Load

	nextElevatorID int
	nextLoadID     int

	tickCount int
	rng       *rand.Rand

	algo algorithm.Algorithm

	WaitTimes  *stats.Accumulator
	TimeInLift *stats.Accumulator
	Occupancy  *stats.Accumulator

	latestLoadMoveTick int
	ended              bool
	fatalErr           error

	pendingEvents []DiffEvent
	// OnDiffEvents, when set, receives the batch of events produced by one
	// tick, after the tick's mutations are complete.
	OnDiffEvents func(tick int, events []DiffEvent)

	logger *slog.Logger
}

// New builds an engine with no elevators and no loads, ready to accept
// AddElevator/AddLoad calls before the first Loop.
func New(floors, maxLoad int, seed uint64, algo algorithm.Algorithm, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		floors:     floors,
		maxLoad:    maxLoad,
		loads:      make(map[int]*domain.Load),
		rng:        rand.New(rand.NewSource(int64(seed))),
		algo:       algo,
		WaitTimes:  stats.NewAccumulator(),
		TimeInLift: stats.NewAccumulator(),
		Occupancy:  stats.NewAccumulator(),
		logger:     logger.With(slog.String("component", constants.ComponentEngine)),
	}
}

// --- algorithm.Engine interface ---

func (e *Engine) Floors() int { return e.floors }

func (e *Engine) Elevators() []algorithm.Elevator {
	out := make([]algorithm.Elevator, len(e.elevators))
	for i, ev := range e.elevators {
		out[i] = ev
	}
	return out
}

func (e *Engine) PendingLoads() []*domain.Load {
	var out []*domain.Load
	for _, l := range e.loads {
		if l.IsWaiting() {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TickCreated != out[j].TickCreated {
			return out[i].TickCreated < out[j].TickCreated
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (e *Engine) MaxLoad() int    { return e.maxLoad }
func (e *Engine) TickCount() int  { return e.tickCount }
func (e *Engine) Intn(n int) int  { return e.rng.Intn(n) }
func (e *Engine) TotalLoads() int { return len(e.loads) }

// SimulationRunning reports whether any load remains pending or in transit.
func (e *Engine) SimulationRunning() bool {
	return len(e.loads) > 0
}

// Ended reports whether the simulation has finished (no loads remain) or
// aborted on a fatal error.
func (e *Engine) Ended() bool { return e.ended || e.fatalErr != nil }

// LatestLoadMoveTick returns the tick index of the most recent LOAD_LOAD or
// UNLOAD_LOAD, used by the harness's stall detector.
func (e *Engine) LatestLoadMoveTick() int { return e.latestLoadMoveTick }

// --- entity management ---

// AddElevator creates a new elevator at floor and notifies the algorithm.
func (e *Engine) AddElevator(floor domain.Floor) *Elevator {
	e.nextElevatorID++
	ev := newElevator(e.nextElevatorID, floor)
	e.elevators = append(e.elevators, ev)
	e.sortElevators()
	e.callHook("OnElevatorAdded", func() { e.algo.OnElevatorAdded(ev) })
	return ev
}

// RemoveElevator removes the elevator with id, or returns ErrElevatorNotFound.
func (e *Engine) RemoveElevator(id int) error {
	for i, ev := range e.elevators {
		if ev.id == id {
			e.elevators = append(e.elevators[:i], e.elevators[i+1:]...)
			e.callHook("OnElevatorRemoved", func() { e.algo.OnElevatorRemoved(ev) })
			return nil
		}
	}
	return domain.ErrElevatorNotFound.WithContext("elevator_id", id)
}

func (e *Engine) sortElevators() {
	sort.Slice(e.elevators, func(i, j int) bool { return e.elevators[i].id < e.elevators[j].id })
}

// SetFloors changes the building height, coerces any elevator above the new
// ceiling down to it, and notifies the algorithm.
func (e *Engine) SetFloors(n int) {
	e.floors = n
	top := domain.Floor(n)
	for _, ev := range e.elevators {
		if ev.currentFloor > top {
			ev.currentFloor = top
		}
	}
	e.callHook("OnFloorsChanged", func() { e.algo.OnFloorsChanged(n) })
}

// SetMaxLoad changes the per-elevator capacity.
func (e *Engine) SetMaxLoad(w int) { e.maxLoad = w }

// SetAlgorithm swaps the active policy, retaining elevators and pending loads.
func (e *Engine) SetAlgorithm(algo algorithm.Algorithm) { e.algo = algo }

// AddLoad creates a waiting load and notifies the algorithm.
func (e *Engine) AddLoad(initial, destination domain.Floor, weight int) (*domain.Load, error) {
	if initial.IsEqual(destination) {
		return nil, domain.ErrSameFloors
	}
	if !initial.IsValid(1, domain.Floor(e.floors)) || !destination.IsValid(1, domain.Floor(e.floors)) {
		return nil, domain.ErrInvalidFloorRange.WithContext("floors", e.floors)
	}
	e.nextLoadID++
	l := domain.NewLoad(e.nextLoadID, initial, destination, weight, e.tickCount)
	e.loads[l.ID] = l
	e.callHook("OnLoadAdded", func() { e.algo.OnLoadAdded(l) })
	return l, nil
}

func (e *Engine) findElevator(id int) *Elevator {
	for _, ev := range e.elevators {
		if ev.id == id {
			return ev
		}
	}
	return nil
}

// Elevator returns the elevator with id, for callers (the manager) that need
// to mutate it directly (e.g. enable/disable).
func (e *Engine) Elevator(id int) (*Elevator, bool) {
	ev := e.findElevator(id)
	return ev, ev != nil
}

// ElevatorStatuses returns a point-in-time snapshot of every elevator, in
// stable id order.
func (e *Engine) ElevatorStatuses() []domain.ElevatorStatus {
	out := make([]domain.ElevatorStatus, len(e.elevators))
	for i, ev := range e.elevators {
		out[i] = ev.Status()
	}
	return out
}

// callHook invokes fn, recovering and logging any panic so a misbehaving
// algorithm hook never aborts the tick loop.
func (e *Engine) callHook(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.OriginErrorHandler.With(e.logger, e.tickCount).Error("algorithm hook panicked",
				slog.String("hook", name), slog.Any("panic", r))
		}
	}()
	fn()
}
