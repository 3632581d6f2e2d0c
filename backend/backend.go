// Package backend defines the execution boundary the lowering pipeline
// targets: a minimal three-function device interface, and a named-factory
// registry generalizing the teacher's qc/simulator.RunnerRegistry
// (simulator/registry.go) from its fixed OneShotRunner surface to this
// system's bytecode-in, histogram-out contract.
package backend

import (
	"fmt"
	"sync"

	"github.com/kegliz/qivm/bytecode"
	"github.com/kegliz/qivm/measurement"
)

// Device is the execution boundary: how many qubits it has room for, which
// gate identifiers it can run directly, and how to run a compiled program
// some number of times and collect the resulting histogram.
type Device interface {
	AvailableQubits() uint32
	GateAvailable(name string) bool
	Exec(code bytecode.ByteCode, shots int) (measurement.Result, error)
}

// Factory builds a fresh Device instance.
type Factory func() Device

// Registry manages named backend factories, guarded by a single mutex —
// the same simplification the teacher's RunnerRegistry makes over
// per-entry locking, since registration happens at process start and
// lookups are infrequent relative to a circuit's execution cost.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a named factory. Re-registering an existing name is an error.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("backend: registry: name cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("backend: registry: factory cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("backend: registry: %q is already registered", name)
	}
	r.factories[name] = f
	return nil
}

// MustRegister is Register but panics on failure, for init()-time registration.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Create instantiates the named backend.
func (r *Registry) Create(name string) (Device, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("backend: registry: unknown backend %q", name)
	}
	dev := f()
	if dev == nil {
		return nil, fmt.Errorf("backend: registry: factory for %q returned nil", name)
	}
	return dev, nil
}

// List returns every registered backend name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

var defaultRegistry = NewRegistry()

// Register adds a named factory to the default, process-wide registry.
func Register(name string, f Factory) error { return defaultRegistry.Register(name, f) }

// MustRegister is Register but panics on failure.
func MustRegister(name string, f Factory) { defaultRegistry.MustRegister(name, f) }

// Create instantiates a backend from the default registry.
func Create(name string) (Device, error) { return defaultRegistry.Create(name) }

// List returns every backend name registered on the default registry.
func List() []string { return defaultRegistry.List() }

// Default returns the process-wide registry, for advanced callers and tests.
func Default() *Registry { return defaultRegistry }
