// Package controller resolves a character's per-tick motion from a persistent
// movement basis and at most one transient action.
//
// Each tick the controller runs the basis, arbitrates between the current
// action and a contender, applies the winner and finally purges unfed
// requests. All contributions are accumulated into a Motion, which is flushed
// into physics inputs once per tick.
package controller

import "github.com/go-gl/mathgl/mgl32"

// VelocityChange is a request to change a velocity through three channels.
type VelocityChange struct {
	Accel   mgl32.Vec3 // Scaled by mass into a force held for one step
	Boost   mgl32.Vec3 // Added to velocity as is, ignores mass
	Impulse mgl32.Vec3 // Scaled by mass into an instant impulse
}

// Accel returns a change on the acceleration channel only.
func Accel(v mgl32.Vec3) VelocityChange { return VelocityChange{Accel: v} }

// Boost returns a change on the boost channel only.
func Boost(v mgl32.Vec3) VelocityChange { return VelocityChange{Boost: v} }

// Impulse returns a change on the impulse channel only.
func Impulse(v mgl32.Vec3) VelocityChange { return VelocityChange{Impulse: v} }

// Add sums two changes channel by channel.
func (c VelocityChange) Add(o VelocityChange) VelocityChange {
	return VelocityChange{
		Accel:   c.Accel.Add(o.Accel),
		Boost:   c.Boost.Add(o.Boost),
		Impulse: c.Impulse.Add(o.Impulse),
	}
}

// IsZero reports whether every channel is the zero vector.
func (c VelocityChange) IsZero() bool {
	var zero mgl32.Vec3
	return c.Accel == zero && c.Boost == zero && c.Impulse == zero
}

// Motion accumulates every linear and angular change requested for a body during one tick.
// Contributions only ever add, so the order in which the basis and actions run does not
// change the flushed result.
type Motion struct {
	Linear  VelocityChange
	Angular VelocityChange
}

// AddLinear accumulates a linear change.
func (m *Motion) AddLinear(c VelocityChange) {
	m.Linear = m.Linear.Add(c)
}

// AddAngular accumulates an angular change.
func (m *Motion) AddAngular(c VelocityChange) {
	m.Angular = m.Angular.Add(c)
}

// Reset clears the accumulator.
func (m *Motion) Reset() {
	*m = Motion{}
}

// MotionOutput is a flushed Motion expressed as physics inputs.
type MotionOutput struct {
	Force          mgl32.Vec3
	Torque         mgl32.Vec3
	LinearBoost    mgl32.Vec3
	AngularBoost   mgl32.Vec3
	LinearImpulse  mgl32.Vec3
	AngularImpulse mgl32.Vec3
}

// Flush converts the accumulated changes into force, torque, velocity deltas and
// impulses for a body of the given mass, then clears the accumulator.
// Accel and impulse channels scale with mass, boost does not.
func (m *Motion) Flush(mass float32) MotionOutput {
	out := MotionOutput{
		Force:          m.Linear.Accel.Mul(mass),
		Torque:         m.Angular.Accel.Mul(mass),
		LinearBoost:    m.Linear.Boost,
		AngularBoost:   m.Angular.Boost,
		LinearImpulse:  m.Linear.Impulse.Mul(mass),
		AngularImpulse: m.Angular.Impulse.Mul(mass),
	}
	m.Reset()
	return out
}
