package algorithm

import (
	"sort"
	"sync"

	"github.com/slavakukuyev/elevator-go/internal/domain"
)

// Constructor builds a fresh Algorithm instance bound to eng. Each job/run
// gets its own instance so per-policy state (direction maps, zone
// assignments, attended-to sets) never leaks across simulations.
type Constructor func(eng Engine) Algorithm

// Registry is an explicit, name-keyed set of available policies, seeded at
// startup by package algorithms' init() functions. Duplicate names fail
// loudly rather than silently overwriting each other.
type Registry struct {
	mu  sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a named policy constructor. Registering the same name twice
// is an InvalidAlgorithm error, fatal at startup.
func (r *Registry) Register(name string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[name]; exists {
		return domain.ErrDuplicateAlgorithm.WithContext("name", name)
	}
	r.ctors[name] = ctor
	return nil
}

// New constructs the named policy bound to eng, or an InvalidAlgorithm error
// if no such policy is registered.
func (r *Registry) New(name string, eng Engine) (Algorithm, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUnknownAlgorithm.WithContext("name", name)
	}
	return ctor(eng), nil
}

// Names returns the registered policy names, sorted for deterministic
// listing.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
