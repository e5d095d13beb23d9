// Package algorithms implements the ten concrete scheduling policies:
// FCFS, SCAN, LOOK, C-SCAN, C-LOOK, N-Step SCAN, N-Step LOOK, Rolling,
// Scatter and Destination Dispatch. Every policy registers itself with this
// package's DefaultRegistry from an init() function.
package algorithms

import (
	"math"
	"sort"

	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// DefaultRegistry is seeded by every policy's init() and consumed by the
// engine/manager/harness when constructing a named algorithm.
var DefaultRegistry = algorithm.NewRegistry()

func mustRegister(name string, ctor algorithm.Constructor) {
	if err := DefaultRegistry.Register(name, ctor); err != nil {
		panic(err)
	}
}

// closestOnboardDestination implements the policy-common first half of
// destination selection: if the elevator carries any load, its next
// destination is the closest carried load's destination floor, ties broken
// by load id for determinism.
func closestOnboardDestination(e algorithm.Elevator) (domain.Floor, bool) {
	loads := e.Loads()
	if len(loads) == 0 {
		return 0, false
	}

	best := loads[0]
	bestDist := e.CurrentFloor().Distance(best.DestinationFloor)
	for _, l := range loads[1:] {
		d := e.CurrentFloor().Distance(l.DestinationFloor)
		if d < bestDist || (d == bestDist && l.ID < best.ID) {
			best, bestDist = l, d
		}
	}
	return best.DestinationFloor, true
}

// sortedPendingByTickCreated returns pending loads ordered oldest-first,
// ties broken by id, as SCAN/C-SCAN use for "pending-load key".
func sortedPendingByTickCreated(loads []*domain.Load) []*domain.Load {
	out := append([]*domain.Load(nil), loads...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TickCreated != out[j].TickCreated {
			return out[i].TickCreated < out[j].TickCreated
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// nearestPendingByInitialFloor returns the pending load whose initial floor
// is nearest to from, ties broken first by distance then by load id.
func nearestPendingByInitialFloor(loads []*domain.Load, from domain.Floor) (*domain.Load, bool) {
	if len(loads) == 0 {
		return nil, false
	}
	best := loads[0]
	bestDist := from.Distance(best.InitialFloor)
	for _, l := range loads[1:] {
		d := from.Distance(l.InitialFloor)
		if d < bestDist || (d == bestDist && l.ID < best.ID) {
			best, bestDist = l, d
		}
	}
	return best, true
}

// splitArray partitions [0, total) into n contiguous, near-equal-length
// zones using a divmod-based chunking formula. Used by N-Step SCAN/LOOK to
// assign floor zones to elevators.
func splitArray(total, n int) []int {
	if n <= 0 {
		return nil
	}
	base := total / n
	remainder := total % n
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = base
		if i < remainder {
			sizes[i]++
		}
	}
	return sizes
}

// zoneBounds returns the [minFloor, maxFloor] (1-based, inclusive) of the
// zone assigned to elevatorIndex out of numElevators elevators spread across
// [1, floors].
func zoneBounds(floors, numElevators, elevatorIndex int) (domain.Floor, domain.Floor) {
	sizes := splitArray(floors, numElevators)
	start := 1
	for i := 0; i < elevatorIndex; i++ {
		start += sizes[i]
	}
	end := start + sizes[elevatorIndex] - 1
	return domain.Floor(start), domain.Floor(end)
}

// destinationDispatchZoneRadius implements the ceil(20*floors/|loads|)
// formula, treating |loads| == 0 as unbounded.
func destinationDispatchZoneRadius(floors, numLoads int) int {
	if numLoads == 0 {
		return math.MaxInt32
	}
	return int(math.Ceil(20 * float64(floors) / float64(numLoads)))
}

// elevatorIndex finds e's position within eng's stable id-ordered elevator
// list, used by N-Step policies to look up e's zone.
func elevatorIndex(eng algorithm.Engine, e algorithm.Elevator) int {
	for i, other := range eng.Elevators() {
		if other.ID() == e.ID() {
			return i
		}
	}
	return -1
}

// directionState is shared per-elevator sweep-direction bookkeeping used by
// SCAN, LOOK, C-SCAN, C-LOOK and Rolling. Policies compose this helper by
// holding a pointer to it in a field rather than inheriting shared behavior.
type directionState struct {
	dir map[int]domain.Direction
}

func newDirectionState() *directionState {
	return &directionState{dir: make(map[int]domain.Direction)}
}

func (d *directionState) get(elevatorID int, fallback domain.Direction) domain.Direction {
	if dir, ok := d.dir[elevatorID]; ok {
		return dir
	}
	return fallback
}

func (d *directionState) set(elevatorID int, dir domain.Direction) {
	d.dir[elevatorID] = dir
}

func (d *directionState) remove(elevatorID int) {
	delete(d.dir, elevatorID)
}

// attendedState tracks, per elevator, the single pending load it has
// reserved ("attended-to": spec glossary), so other elevators ignore it
// while planning.
type attendedState struct {
	attended map[int]*domain.Load
}

func newAttendedState() *attendedState {
	return &attendedState{attended: make(map[int]*domain.Load)}
}

func (a *attendedState) get(elevatorID int) (*domain.Load, bool) {
	l, ok := a.attended[elevatorID]
	return l, ok
}

func (a *attendedState) set(elevatorID int, load *domain.Load) {
	a.attended[elevatorID] = load
}

func (a *attendedState) clear(elevatorID int) {
	delete(a.attended, elevatorID)
}

// clearByLoadID removes any elevator's attended-to reservation pointing at
// loadID, used when a load is delivered or otherwise removed from the engine.
func (a *attendedState) clearByLoadID(loadID int) {
	for id, l := range a.attended {
		if l.ID == loadID {
			delete(a.attended, id)
		}
	}
}

// isAttendedElsewhere reports whether some elevator other than elevatorID
// already attends loadID.
func (a *attendedState) isAttendedElsewhere(loadID, elevatorID int) bool {
	for id, l := range a.attended {
		if id != elevatorID && l.ID == loadID {
			return true
		}
	}
	return false
}

// unattendedBy filters loads down to those not already attended by some
// elevator other than elevatorID, so destination selection never has two
// elevators converge on the same pending call.
func (a *attendedState) unattendedBy(loads []*domain.Load, elevatorID int) []*domain.Load {
	out := make([]*domain.Load, 0, len(loads))
	for _, l := range loads {
		if !a.isAttendedElsewhere(l.ID, elevatorID) {
			out = append(out, l)
		}
	}
	return out
}

// zoneState tracks the contiguous floor zone assigned to each elevator under
// N-Step policies, plus a one-shot reposition target set whenever zones are
// recalculated: each elevator travels to the first floor of its new zone
// before resuming normal servicing.
type zoneState struct {
	bounds     map[int][2]domain.Floor
	reposition map[int]domain.Floor
}

func newZoneState() *zoneState {
	return &zoneState{
		bounds:     make(map[int][2]domain.Floor),
		reposition: make(map[int]domain.Floor),
	}
}

// recompute reassigns every elevator's zone from scratch, in stable id
// order, and queues each elevator for repositioning to its zone's first
// floor.
func (z *zoneState) recompute(eng algorithm.Engine) {
	elevators := eng.Elevators()
	z.bounds = make(map[int][2]domain.Floor, len(elevators))
	z.reposition = make(map[int]domain.Floor, len(elevators))

	for i, e := range elevators {
		min, max := zoneBounds(eng.Floors(), len(elevators), i)
		z.bounds[e.ID()] = [2]domain.Floor{min, max}
		z.reposition[e.ID()] = min
	}
}

func (z *zoneState) boundsFor(elevatorID int) (domain.Floor, domain.Floor, bool) {
	b, ok := z.bounds[elevatorID]
	if !ok {
		return 0, 0, false
	}
	return b[0], b[1], true
}

func (z *zoneState) inZone(elevatorID int, floor domain.Floor) bool {
	min, max, ok := z.boundsFor(elevatorID)
	return ok && floor >= min && floor <= max
}

// takeReposition returns and clears the pending reposition target for
// elevatorID, if any.
func (z *zoneState) takeReposition(elevatorID int) (domain.Floor, bool) {
	target, ok := z.reposition[elevatorID]
	if ok {
		delete(z.reposition, elevatorID)
	}
	return target, ok
}

func (z *zoneState) filterInZone(elevatorID int, loads []*domain.Load) []*domain.Load {
	out := make([]*domain.Load, 0, len(loads))
	for _, l := range loads {
		if z.inZone(elevatorID, l.InitialFloor) {
			out = append(out, l)
		}
	}
	return out
}
