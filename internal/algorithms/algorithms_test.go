package algorithms

import (
	"math/rand"
	"testing"

	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElevator struct {
	id           int
	currentFloor domain.Floor
	destination  *domain.Floor
	loads        []*domain.Load
	enabled      bool
}

func (f *fakeElevator) ID() int                      { return f.id }
func (f *fakeElevator) CurrentFloor() domain.Floor   { return f.currentFloor }
func (f *fakeElevator) Destination() *domain.Floor   { return f.destination }
func (f *fakeElevator) Loads() []*domain.Load        { return f.loads }
func (f *fakeElevator) Enabled() bool                { return f.enabled }
func (f *fakeElevator) LoadWeight() int {
	total := 0
	for _, l := range f.loads {
		total += l.Weight
	}
	return total
}

type fakeEngine struct {
	floors    int
	elevators []algorithm.Elevator
	pending   []*domain.Load
	maxLoad   int
	tick      int
	rng       *rand.Rand
}

func (f *fakeEngine) Floors() int                    { return f.floors }
func (f *fakeEngine) Elevators() []algorithm.Elevator { return f.elevators }
func (f *fakeEngine) PendingLoads() []*domain.Load    { return f.pending }
func (f *fakeEngine) TotalLoads() int                 { return len(f.pending) }
func (f *fakeEngine) MaxLoad() int                    { return f.maxLoad }
func (f *fakeEngine) TickCount() int                  { return f.tick }
func (f *fakeEngine) Intn(n int) int                  { return f.rng.Intn(n) }

func newFakeEngine(floors int) *fakeEngine {
	return &fakeEngine{floors: floors, maxLoad: 900, rng: rand.New(rand.NewSource(1))}
}

func TestFCFS_AttendsOldestThenOnlyBoardsThatLoad(t *testing.T) {
	eng := newFakeEngine(5)
	algo := DefaultRegistry
	a, err := algo.New("FCFS", eng)
	require.NoError(t, err)

	e := &fakeElevator{id: 1, currentFloor: domain.NewFloor(1), enabled: true}
	l1 := domain.NewLoad(1, domain.NewFloor(3), domain.NewFloor(5), 60, 0)
	l2 := domain.NewLoad(2, domain.NewFloor(2), domain.NewFloor(4), 60, 1)
	eng.pending = []*domain.Load{l2, l1} // l1 created first (tick 0)

	dest, ok := a.GetNewDestination(e)
	require.True(t, ok)
	assert.Equal(t, domain.NewFloor(3), dest)

	assert.True(t, a.PreLoadCheck(l1, e))
	assert.False(t, a.PreLoadCheck(l2, e))
}

func TestSCAN_FlipsAtTopFloor(t *testing.T) {
	eng := newFakeEngine(5)
	a, err := DefaultRegistry.New("SCAN", eng)
	require.NoError(t, err)

	e := &fakeElevator{id: 1, currentFloor: domain.NewFloor(5), enabled: true}
	a.OnElevatorAdded(e)
	a.OnElevatorMove(e) // at top floor, should flip to DOWN

	l := domain.NewLoad(1, domain.NewFloor(5), domain.NewFloor(1), 60, 0)
	assert.True(t, a.PreLoadCheck(l, e))
}

func TestScatter_PicksAmongPending(t *testing.T) {
	eng := newFakeEngine(10)
	a, err := DefaultRegistry.New("Scatter", eng)
	require.NoError(t, err)

	e := &fakeElevator{id: 1, currentFloor: domain.NewFloor(1), enabled: true}
	l1 := domain.NewLoad(1, domain.NewFloor(3), domain.NewFloor(5), 60, 0)
	eng.pending = []*domain.Load{l1}

	dest, ok := a.GetNewDestination(e)
	require.True(t, ok)
	assert.Equal(t, domain.NewFloor(3), dest)
	assert.True(t, a.PreLoadCheck(l1, e))
}

func TestSplitArray_NearEqualChunks(t *testing.T) {
	assert.Equal(t, []int{3, 3, 3}, splitArray(9, 3))
	assert.Equal(t, []int{4, 3, 3}, splitArray(10, 3))
}

func TestZoneBounds(t *testing.T) {
	min, max := zoneBounds(9, 3, 0)
	assert.Equal(t, domain.NewFloor(1), min)
	assert.Equal(t, domain.NewFloor(3), max)

	min, max = zoneBounds(9, 3, 2)
	assert.Equal(t, domain.NewFloor(7), min)
	assert.Equal(t, domain.NewFloor(9), max)
}

func TestDestinationDispatchZoneRadius(t *testing.T) {
	assert.Equal(t, 40, destinationDispatchZoneRadius(20, 10))
	assert.Equal(t, 10, destinationDispatchZoneRadius(20, 40))
}

func TestDestinationDispatchZoneRadius_ZeroLoadsIsUnbounded(t *testing.T) {
	radius := destinationDispatchZoneRadius(20, 0)
	assert.Greater(t, radius, 1000000)
}

func TestNStepSCAN_RestrictsToZone(t *testing.T) {
	eng := newFakeEngine(9)
	e1 := &fakeElevator{id: 1, currentFloor: domain.NewFloor(1), enabled: true}
	e2 := &fakeElevator{id: 2, currentFloor: domain.NewFloor(7), enabled: true}
	eng.elevators = []algorithm.Elevator{e1, e2}

	a, err := DefaultRegistry.New("N-Step SCAN", eng)
	require.NoError(t, err)
	a.OnElevatorAdded(e1)
	a.OnElevatorAdded(e2)

	farLoad := domain.NewLoad(1, domain.NewFloor(8), domain.NewFloor(9), 60, 0)
	eng.pending = []*domain.Load{farLoad}

	// The first call after zones are recomputed sends e1 to its zone's first floor.
	dest, ok := a.GetNewDestination(e1)
	require.True(t, ok)
	assert.Equal(t, domain.NewFloor(1), dest)

	// e1's zone is [1,5]; the only pending load is at floor 8, outside it.
	_, ok = a.GetNewDestination(e1)
	assert.False(t, ok)
}
