// Package manager wraps an engine with the control operations external
// callers use to drive a simulation: elevator/passenger administration,
// algorithm swaps, real-time pacing, and lifecycle (pause/play/close).
package manager

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/slavakukuyev/elevator-go/internal/algorithms"
	"github.com/slavakukuyev/elevator-go/internal/constants"
	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/slavakukuyev/elevator-go/internal/engine"
)

// Config is the set of parameters a manager needs to build its initial
// (and any subsequently reset) engine.
type Config struct {
	Floors        int
	MaxLoad       int
	Speed         float64 // ticks per second; math.Inf(1) runs unpaced.
	AlgorithmName string
	Seed          uint64
}

// Manager owns one Engine at a time and serializes every mutation to it
// through mu, so control operations issued from another goroutine never
// race with a concurrently running tick loop.
type Manager struct {
	mu  sync.Mutex
	cfg Config
	eng *engine.Engine

	paused bool
	closed bool

	logger *slog.Logger

	// OnDiffEvents, when set, receives every tick's event batch.
	OnDiffEvents func(tick int, events []engine.DiffEvent)
}

// New builds a manager and its initial engine from cfg.
func New(cfg Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{cfg: cfg, logger: logger.With(slog.String("component", constants.ComponentManager))}
	if err := m.buildEngine(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) buildEngine() error {
	eng := engine.New(m.cfg.Floors, m.cfg.MaxLoad, m.cfg.Seed, nil, m.logger)
	algo, err := algorithms.DefaultRegistry.New(m.cfg.AlgorithmName, eng)
	if err != nil {
		return err
	}
	eng.SetAlgorithm(algo)
	eng.OnDiffEvents = func(tick int, events []engine.DiffEvent) {
		if m.OnDiffEvents != nil {
			m.OnDiffEvents(tick, events)
		}
	}
	m.eng = eng
	return nil
}

// Engine exposes the live engine for read-only inspection (status reporting).
func (m *Manager) Engine() *engine.Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng
}

// AddElevator adds a new elevator at floor.
func (m *Manager) AddElevator(floor domain.Floor) (domain.ElevatorStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ElevatorStatus{}, domain.NewInternalError("manager is closed", nil)
	}
	ev := m.eng.AddElevator(floor)
	return ev.Status(), nil
}

// RemoveElevator removes the elevator with id.
func (m *Manager) RemoveElevator(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng.RemoveElevator(id)
}

// SetFloors changes the building height.
func (m *Manager) SetFloors(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Floors = n
	m.eng.SetFloors(n)
}

// SetSpeed changes the pacing model used by Run.
func (m *Manager) SetSpeed(speed float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Speed = speed
}

// SetMaxLoad changes per-elevator capacity.
func (m *Manager) SetMaxLoad(w int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.MaxLoad = w
	m.eng.SetMaxLoad(w)
}

// AddPassenger creates one load traveling from src to dst. src must differ
// from dst.
func (m *Manager) AddPassenger(src, dst domain.Floor, weight int) (*domain.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng.AddLoad(src, dst, weight)
}

// Pair is one (src, dst) passenger request for AddPassengers.
type Pair struct {
	Src, Dst domain.Floor
	Weight   int
}

// AddPassengers creates one load per pair, stopping at the first error.
func (m *Manager) AddPassengers(pairs []Pair) ([]*domain.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loads := make([]*domain.Load, 0, len(pairs))
	for _, p := range pairs {
		l, err := m.eng.AddLoad(p.Src, p.Dst, p.Weight)
		if err != nil {
			return loads, err
		}
		loads = append(loads, l)
	}
	return loads, nil
}

// SetAlgorithm swaps the active policy by name, retaining elevators and
// pending loads.
func (m *Manager) SetAlgorithm(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	algo, err := algorithms.DefaultRegistry.New(name, m.eng)
	if err != nil {
		return err
	}
	m.cfg.AlgorithmName = name
	m.eng.SetAlgorithm(algo)
	return nil
}

// Reset re-instantiates the engine at tick_count = 0. If name is empty the
// current algorithm class is retained.
func (m *Manager) Reset(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name != "" {
		m.cfg.AlgorithmName = name
	}
	return m.buildEngine()
}

// Pause stops Run from advancing ticks until Play is called.
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

// Play resumes tick advancement.
func (m *Manager) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

// ToggleActive flips the paused state and reports the new value.
func (m *Manager) ToggleActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = !m.paused
	return !m.paused
}

// Close signals any running Run loop to stop after the current tick.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Step advances the engine by exactly one tick, ignoring pause/pacing, for
// cooperative-mode callers that drive their own loop.
func (m *Manager) Step() ([]engine.DiffEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng.Loop()
}

// Ended reports whether the current engine has finished or aborted.
func (m *Manager) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng.Ended()
}

// tickInterval returns the pacing delay implied by cfg.Speed: one engine
// tick per 1/speed seconds, or zero (unpaced) for an infinite speed.
func (m *Manager) tickInterval() time.Duration {
	if math.IsInf(m.cfg.Speed, 1) || m.cfg.Speed <= 0 {
		return 0
	}
	return time.Duration(float64(constants.DefaultTickPaceUnit) / m.cfg.Speed)
}

// Run drives the engine to termination, pacing ticks according to the
// configured speed, honoring Pause/Play and Close/ctx cancellation. This is
// the "thread" execution mode of the two described for the engine: the loop
// runs on whichever goroutine calls Run, with all state mutation serialized
// through m.mu exactly as it is for the direct control operations above.
func (m *Manager) Run(ctx context.Context) error {
	ticker := newPacer(m.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return nil
		}
		if m.paused {
			m.mu.Unlock()
			// Re-arm the pacer so Play and Close are noticed; an unpaced
			// pacer only fires again after a Reset.
			ticker.Reset(10 * time.Millisecond)
			continue
		}
		interval := m.tickInterval()
		_, err := m.eng.Loop()
		ended := m.eng.Ended()
		m.mu.Unlock()

		if err != nil {
			return err
		}
		if ended {
			return nil
		}
		ticker.Reset(interval)
	}
}
