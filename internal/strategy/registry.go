package strategy

import (
	"slices"
	"sync"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
)

// Registry maps strategy names to constructors.
type Registry struct {
	constructors map[string]Constructor
	mu           sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
		mu:           sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry holding every built-in strategy. It
// panics if two built-ins share a name.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	builtins := map[string]Constructor{
		NameBBRSI:          NewBBRSI,
		NameRSIScalping:    NewRSIScalping,
		NameMARSIHybrid:    NewMARSIHybrid,
		NameScalping:       NewScalping,
		NameSuperOptimized: NewSuperOptimized,
	}

	for name, constructor := range builtins {
		if err := r.Register(name, constructor); err != nil {
			panic(err)
		}
	}

	return r
}

// Register adds a constructor under name.
func (r *Registry) Register(name string, constructor Constructor) error {
	if name == "" || constructor == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "strategy name and constructor are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyRegistered, "strategy %s already registered", name)
	}

	r.constructors[name] = constructor

	return nil
}

// Create builds a new instance of the named strategy.
func (r *Registry) Create(name string, params map[string]any) (Strategy, error) {
	r.mu.RLock()
	constructor, exists := r.constructors[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", name)
	}

	return constructor(params)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.constructors[name]

	return exists
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
