package controller

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"
)

var (
	// ErrUnknownBasis is returned when a basis name has no registered factory.
	ErrUnknownBasis = errors.New("unknown basis")
	// ErrUnknownAction is returned when an action name has no registered factory.
	ErrUnknownAction = errors.New("unknown action")
)

// Intent carries the per-request inputs a factory fills into its defaults.
type Intent struct {
	Velocity mgl32.Vec3
	Facing   mgl32.Vec3
}

// BasisFactory builds a basis from an intent.
type BasisFactory func(Intent) Basis

// ActionFactory builds an action from an intent.
type ActionFactory func(Intent) Action

// Registry maps stable names to basis and action factories so brains and
// scripts can refer to movement by name. Bases and actions share one namespace.
// Registration panics on collisions: a duplicate name is a programming error.
type Registry struct {
	bases   map[string]BasisFactory
	actions map[string]ActionFactory
	ids     map[uint64]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bases:   make(map[string]BasisFactory),
		actions: make(map[string]ActionFactory),
		ids:     make(map[uint64]string),
	}
}

// ID returns the stable 64-bit identifier of a name.
func ID(name string) uint64 {
	return xxh3.HashString(name)
}

func (r *Registry) claim(name, produced string) {
	if name == "" {
		panic("controller: empty registry name")
	}
	if produced != name {
		panic(fmt.Sprintf("controller: factory registered as %q builds %q", name, produced))
	}
	id := ID(name)
	if other, ok := r.ids[id]; ok {
		if other == name {
			panic(fmt.Sprintf("controller: %q registered twice", name))
		}
		panic(fmt.Sprintf("controller: %q and %q share id %x", name, other, id))
	}
	r.ids[id] = name
}

// RegisterBasis adds a basis factory under name.
func (r *Registry) RegisterBasis(name string, f BasisFactory) {
	r.claim(name, f(Intent{}).Name())
	r.bases[name] = f
}

// RegisterAction adds an action factory under name.
func (r *Registry) RegisterAction(name string, f ActionFactory) {
	r.claim(name, f(Intent{}).Name())
	r.actions[name] = f
}

// NewBasis builds the named basis.
func (r *Registry) NewBasis(name string, in Intent) (Basis, error) {
	f, ok := r.bases[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBasis, name)
	}
	return f(in), nil
}

// NewAction builds the named action.
func (r *Registry) NewAction(name string, in Intent) (Action, error) {
	f, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return f(in), nil
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ids))
	for _, name := range r.ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
