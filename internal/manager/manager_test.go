package manager

import (
	"context"
	"testing"
	"time"

	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(Config{
		Floors:        5,
		MaxLoad:       900,
		Speed:         0, // unpaced: run()s as fast as possible
		AlgorithmName: "FCFS",
		Seed:          1,
	}, nil)
	require.NoError(t, err)
	return m
}

func TestManager_AddElevatorAndPassenger(t *testing.T) {
	m := newTestManager(t)
	status, err := m.AddElevator(domain.NewFloor(1))
	require.NoError(t, err)
	assert.Equal(t, domain.NewFloor(1), status.CurrentFloor)

	load, err := m.AddPassenger(domain.NewFloor(2), domain.NewFloor(4), 60)
	require.NoError(t, err)
	assert.Equal(t, domain.NewFloor(2), load.InitialFloor)
}

func TestManager_RunToCompletion(t *testing.T) {
	m := newTestManager(t)
	_, err := m.AddElevator(domain.NewFloor(1))
	require.NoError(t, err)
	_, err = m.AddPassenger(domain.NewFloor(3), domain.NewFloor(5), 60)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = m.Run(ctx)
	require.NoError(t, err)
	assert.True(t, m.Ended())
}

func TestManager_PauseStopsProgress(t *testing.T) {
	m := newTestManager(t)
	_, err := m.AddElevator(domain.NewFloor(1))
	require.NoError(t, err)
	_, err = m.AddPassenger(domain.NewFloor(3), domain.NewFloor(5), 60)
	require.NoError(t, err)

	m.Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = m.Run(ctx)

	assert.False(t, m.Ended())
}

func TestManager_ResetReinitializesEngine(t *testing.T) {
	m := newTestManager(t)
	_, err := m.AddElevator(domain.NewFloor(1))
	require.NoError(t, err)

	require.NoError(t, m.Reset(""))
	assert.Equal(t, 0, m.Engine().TickCount())
	assert.Empty(t, m.Engine().ElevatorStatuses())
}

func TestManager_SetAlgorithmUnknownNameErrors(t *testing.T) {
	m := newTestManager(t)
	err := m.SetAlgorithm("does-not-exist")
	assert.Error(t, err)
}
