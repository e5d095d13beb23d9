package harness

import "github.com/slavakukuyev/elevator-go/internal/domain"

// LoadSpec pre-populates one load at engine construction, bypassing the
// harness's random (src, dst) generation.
type LoadSpec struct {
	Initial     domain.Floor `json:"initial_floor"`
	Destination domain.Floor `json:"destination_floor"`
	Weight      int          `json:"weight"`
}

// TestSettings describes one named scenario to run, possibly over several
// iterations with independently seeded jobs.
type TestSettings struct {
	Name          string `json:"name"`
	AlgorithmName string `json:"algorithm_name"`
	Seed          uint64 `json:"seed"`
	Floors        int    `json:"floors"`
	NumElevators  int    `json:"num_elevators"`
	NumPassengers int    `json:"num_passengers"`
	MaxLoad       int    `json:"max_load"`
	Iterations    int    `json:"iterations"`

	PrepopulatedLoads []LoadSpec `json:"prepopulated_loads,omitempty"`

	// InitFunction, when set, runs once per job after elevators and loads
	// are injected but before the first tick. OnTick, when set, runs after
	// every tick. Neither is part of the JSON shape; both are for
	// programmatic callers embedding the harness directly.
	InitFunction func(algo AlgorithmHandle) `json:"-"`
	OnTick       func(algo AlgorithmHandle) `json:"-"`
}

// AlgorithmHandle is the narrow view of a running job's algorithm instance
// exposed to InitFunction/OnTick hooks.
type AlgorithmHandle interface {
	Name() string
}

// Validate checks the required TestSettings fields, matching the harness's
// "unknown/missing field is an InvalidConfig error" contract.
func (s TestSettings) Validate() error {
	if s.Name == "" {
		return domain.NewInvalidConfigError("test settings missing required field: name", nil)
	}
	if s.AlgorithmName == "" {
		return domain.NewInvalidConfigError("test settings missing required field: algorithm_name", nil).
			WithContext("name", s.Name)
	}
	if s.Floors <= 0 {
		return domain.NewInvalidConfigError("test settings floors must be positive", nil).
			WithContext("name", s.Name)
	}
	if s.NumElevators <= 0 {
		return domain.NewInvalidConfigError("test settings num_elevators must be positive", nil).
			WithContext("name", s.Name)
	}
	if s.MaxLoad <= 0 {
		return domain.NewInvalidConfigError("test settings max_load must be positive", nil).
			WithContext("name", s.Name)
	}
	if s.Iterations <= 0 {
		return domain.NewInvalidConfigError("test settings iterations must be positive", nil).
			WithContext("name", s.Name)
	}
	for _, ls := range s.PrepopulatedLoads {
		if _, err := domain.NewFloorWithValidation(ls.Initial.Value()); err != nil {
			return domain.NewInvalidConfigError("prepopulated load has an invalid initial floor", err).
				WithContext("name", s.Name)
		}
		if _, err := domain.NewFloorWithValidation(ls.Destination.Value()); err != nil {
			return domain.NewInvalidConfigError("prepopulated load has an invalid destination floor", err).
				WithContext("name", s.Name)
		}
		if err := domain.ValidateFloorRange(ls.Initial, ls.Destination); err != nil {
			return domain.NewInvalidConfigError("prepopulated load has an invalid floor range", err).
				WithContext("name", s.Name)
		}
	}
	return nil
}
