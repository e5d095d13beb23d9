// Package algorithm defines the scheduling-policy contract and a name-keyed
// registry of concrete implementations, seeded explicitly at startup rather
// than discovered dynamically.
//
// The interface is expressed over small read-only views (Elevator, Engine)
// rather than the concrete engine types, so this package has no dependency
// on package engine — engine depends on algorithm, not the other way round.
package algorithm

import "github.com/slavakukuyev/elevator-go/internal/domain"

// Elevator is the read-only view of an elevator a policy may inspect.
type Elevator interface {
	ID() int
	CurrentFloor() domain.Floor
	Destination() *domain.Floor
	Loads() []*domain.Load
	LoadWeight() int
	Enabled() bool
}

// Engine is the read-only view of simulation-wide state a policy may inspect,
// plus the one piece of shared mutable state every policy needs: a
// deterministic random source owned by the engine, so no policy consults
// global random state.
type Engine interface {
	Floors() int
	Elevators() []Elevator
	PendingLoads() []*domain.Load
	// TotalLoads is the full pending-plus-carried load count (spec's
	// "loads" set), distinct from PendingLoads which excludes carried ones.
	TotalLoads() int
	MaxLoad() int
	TickCount() int
	Intn(n int) int
}

// Algorithm is the full capability set a scheduling policy may implement.
// Only Name and GetNewDestination are mandatory; every other method has a
// no-op/true default supplied by Base, which concrete policies embed.
type Algorithm interface {
	Name() string

	// GetNewDestination chooses a destination for e, or (zero, false) if
	// none is currently available (e.g. no pending loads and nothing
	// carried). Invoked when e has no destination or has reached it.
	GetNewDestination(e Elevator) (domain.Floor, bool)

	PreLoadCheck(load *domain.Load, e Elevator) bool
	PreUnloadCheck(load *domain.Load, e Elevator) bool

	PreLoop()
	PostLoop()

	OnLoadLoad(load *domain.Load, e Elevator)
	OnLoadUnload(load *domain.Load, e Elevator)
	OnLoadAdded(load *domain.Load)
	OnLoadRemoved(load *domain.Load)

	OnElevatorAdded(e Elevator)
	OnElevatorRemoved(e Elevator)
	OnElevatorMove(e Elevator)
	OnFloorsChanged(floors int)

	OnSimulationEnd()
}

// Base supplies a default true/no-op behavior for every optional hook.
// Concrete policies embed Base and override only what they need.
type Base struct{}

func (Base) PreLoadCheck(*domain.Load, Elevator) bool   { return true }
func (Base) PreUnloadCheck(*domain.Load, Elevator) bool { return true }
func (Base) PreLoop()                                   {}
func (Base) PostLoop()                                  {}
func (Base) OnLoadLoad(*domain.Load, Elevator)           {}
func (Base) OnLoadUnload(*domain.Load, Elevator)         {}
func (Base) OnLoadAdded(*domain.Load)                    {}
func (Base) OnLoadRemoved(*domain.Load)                  {}
func (Base) OnElevatorAdded(Elevator)                    {}
func (Base) OnElevatorRemoved(Elevator)                  {}
func (Base) OnElevatorMove(Elevator)                     {}
func (Base) OnFloorsChanged(int)                         {}
func (Base) OnSimulationEnd()                            {}
