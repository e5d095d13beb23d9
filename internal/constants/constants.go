package constants

import "time"

// Application constants centralized in one location to improve type safety
// and eliminate magic strings throughout the codebase.

// Simulation defaults
const (
	DefaultLogLevel = "INFO"

	// MaxNumLoadsRemovedPerTick bounds how many load/unload door operations
	// may occur between two consecutive ADD_TICKs within one RUN_CYCLE.
	MaxNumLoadsRemovedPerTick = 3

	// DoorOperationTicks is how many ADD_TICKs one open_door/close_door
	// helper enqueues.
	DoorOperationTicks = 3

	// TravelTicks is how many ADD_TICKs are enqueued before MOVE_ELEVATOR
	// within a cycle plan.
	TravelTicks = 3

	// DefaultPersonWeight is the assumed weight, in kg, of one passenger.
	DefaultPersonWeight = 60

	// DefaultMaxLoad is the default elevator capacity in kg (15 people).
	DefaultMaxLoad = 15 * DefaultPersonWeight

	// StallTicks is the number of ticks without a load move after which a
	// harness job is declared stalled.
	StallTicks = 500
)

// Component Names for Logging
const (
	ComponentEngine   = "engine"
	ComponentManager  = "manager"
	ComponentHarness  = "harness"
	ComponentAlgorithm = "algorithm"
)

// Floor Validation Limits
const (
	MinAllowedFloor = -100 // Reasonable minimum for basements
	MaxAllowedFloor = 200  // Reasonable maximum for skyscrapers
)

// Metrics
const (
	MetricsNamespace  = "elevator_sim"
	ElevatorNameLabel = "elevator"
)

// Default Elevator Names
const (
	DefaultElevatorPrefix = "Elevator"
)

// Pacing
const (
	// DefaultTickPaceUnit is the unit the speed model divides by: one tick
	// every 1/speed seconds.
	DefaultTickPaceUnit = time.Second
)
