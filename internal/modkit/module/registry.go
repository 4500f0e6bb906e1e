package module

import (
	"fmt"
	"sync"
)

// Registry keeps modules in mount order, addressable by name
type Registry struct {
	mu     sync.RWMutex
	order  []Module
	byName map[string]Module
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{byName: map[string]Module{}} }

// Add appends m; names are unique
func (r *Registry) Add(mods ...Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range mods {
		if _, dup := r.byName[m.Name()]; dup {
			return fmt.Errorf("module %q registered twice", m.Name())
		}
		r.byName[m.Name()] = m
		r.order = append(r.order, m)
	}
	return nil
}

// Get returns the module registered as name
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	return m, ok
}

// Modules returns a copy of the registered modules in mount order
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Module(nil), r.order...)
}

// Lookup resolves port T from the module registered as name
func Lookup[T any](r *Registry, name string) (T, bool) {
	m, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}
