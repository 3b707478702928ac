package controller

import "github.com/go-gl/mathgl/mgl32"

// Basis is the persistent movement strategy that runs every tick, whether or
// not an action is active. A basis value carries both its input parameters
// and its internal state.
type Basis interface {
	// Name identifies the basis kind. Two values with the same name must have the same type.
	Name() string
	// Apply adds this tick's contribution to motion and advances internal state.
	Apply(ctx *TickContext, motion *Motion)
	// IsAirborne reports the debounced airborne state.
	IsAirborne() bool
	// Displacement returns the offset from the body to its rest position, if known.
	Displacement() (mgl32.Vec3, bool)
	// Retune copies the input parameters of next into the receiver, keeping internal state.
	Retune(next Basis)
}

// SpringBasis is implemented by bases that hold the body off the floor with a spring.
type SpringBasis interface {
	Basis
	// SpringForce returns the spring term applied on the last tick, along up.
	SpringForce() float32
	UpAxis() mgl32.Vec3
}
