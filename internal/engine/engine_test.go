package engine

import (
	"testing"

	"github.com/slavakukuyev/elevator-go/internal/algorithm"
	"github.com/slavakukuyev/elevator-go/internal/algorithms"
	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, name string, floors int) *Engine {
	t.Helper()
	eng := New(floors, 900, 1, nil, nil)
	algo, err := algorithms.DefaultRegistry.New(name, eng)
	require.NoError(t, err)
	eng.SetAlgorithm(algo)
	return eng
}

func runUntilDone(t *testing.T, eng *Engine, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if eng.Ended() {
			return
		}
		_, err := eng.Loop()
		require.NoError(t, err)
	}
	t.Fatalf("simulation did not terminate within %d ticks", maxTicks)
}

func TestFCFS_SingleElevatorTwoStops(t *testing.T) {
	eng := newTestEngine(t, "FCFS", 5)
	eng.AddElevator(domain.NewFloor(1))
	_, err := eng.AddLoad(domain.NewFloor(3), domain.NewFloor(5), 60)
	require.NoError(t, err)
	_, err = eng.AddLoad(domain.NewFloor(2), domain.NewFloor(4), 60)
	require.NoError(t, err)

	runUntilDone(t, eng, 200)

	assert.False(t, eng.SimulationRunning())
	assert.Equal(t, 2, eng.WaitTimes.Len())
	assert.Equal(t, 2, eng.TimeInLift.Len())
}

func TestLOOK_Termination(t *testing.T) {
	eng := newTestEngine(t, "LOOK", 4)
	eng.AddElevator(domain.NewFloor(2))
	_, err := eng.AddLoad(domain.NewFloor(4), domain.NewFloor(1), 60)
	require.NoError(t, err)

	ended := false
	for i := 0; i < 100 && !ended; i++ {
		_, err := eng.Loop()
		require.NoError(t, err)
		ended = eng.Ended()
	}

	require.True(t, ended)
	assert.False(t, eng.SimulationRunning())
}

func TestEngine_NoOpPastTermination(t *testing.T) {
	eng := newTestEngine(t, "FCFS", 3)
	eng.AddElevator(domain.NewFloor(1))

	events, err := eng.Loop()
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.True(t, eng.Ended())
	tickAfterEnd := eng.TickCount()

	events, err = eng.Loop()
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Equal(t, tickAfterEnd, eng.TickCount())
}

func TestEngine_RejectsSameFloorLoad(t *testing.T) {
	eng := newTestEngine(t, "FCFS", 5)
	_, err := eng.AddLoad(domain.NewFloor(2), domain.NewFloor(2), 60)
	require.Error(t, err)
}

func TestEngine_SetFloorsCoercesElevatorsDown(t *testing.T) {
	eng := newTestEngine(t, "FCFS", 10)
	ev := eng.AddElevator(domain.NewFloor(9))
	eng.SetFloors(5)
	assert.Equal(t, domain.NewFloor(5), ev.CurrentFloor())
}

var _ algorithm.Engine = (*Engine)(nil)
