package controller

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// WalkName is the registered name of the Walk basis.
const WalkName = "Walk"

// Spring describes the floating spring that holds a body above the floor.
type Spring struct {
	Strength float32
	Damper   float32
}

// WalkParams are the brain-controlled inputs of Walk.
type WalkParams struct {
	Velocity mgl32.Vec3 // Desired planar velocity; zero means stop
	Facing   mgl32.Vec3 // Desired facing; zero keeps the current orientation

	Up             mgl32.Vec3
	Forward        mgl32.Vec3 // Local forward of an unrotated body
	FloatingHeight float32
	FloatingMargin float32 // Contact tolerance above the floating height
	Spring         Spring
	TurningAngVel  float32
	AirborneGrace  time.Duration
}

// Walk is the ground locomotion basis: it floats the body on a damped spring,
// converges planar velocity towards the requested one and turns towards the
// requested facing.
type Walk struct {
	WalkParams

	springForce float32
	offset      float32
	hasFloor    bool
	airborne    bool
	airTimer    Timer
}

var _ SpringBasis = (*Walk)(nil)

// NewWalk returns a grounded Walk with the given parameters.
func NewWalk(p WalkParams) *Walk {
	if !isZero(p.Up) {
		p.Up = p.Up.Normalize()
	}
	return &Walk{WalkParams: p, airTimer: NewTimer(p.AirborneGrace)}
}

// Name implements Basis.
func (w *Walk) Name() string { return WalkName }

// Retune implements Basis.
func (w *Walk) Retune(next Basis) {
	n, ok := next.(*Walk)
	if !ok {
		return
	}
	w.WalkParams = n.WalkParams
	w.airTimer.SetDuration(n.AirborneGrace)
}

// IsAirborne implements Basis.
func (w *Walk) IsAirborne() bool { return w.airborne }

// SpringForce implements SpringBasis.
func (w *Walk) SpringForce() float32 { return w.springForce }

// UpAxis implements SpringBasis.
func (w *Walk) UpAxis() mgl32.Vec3 { return w.Up }

// Displacement implements Basis: the offset along up from the body to the floating height.
func (w *Walk) Displacement() (mgl32.Vec3, bool) {
	if !w.hasFloor {
		return mgl32.Vec3{}, false
	}
	return w.Up.Mul(w.offset), true
}

// Apply implements Basis.
func (w *Walk) Apply(ctx *TickContext, motion *Motion) {
	up := w.Up
	vel := ctx.Velocity.Linear

	contact := ctx.HasFloor && ctx.Floor.Distance <= w.FloatingHeight+w.FloatingMargin
	if contact {
		w.airTimer.Reset()
		w.airborne = false
	} else {
		// A short miss (stairs, seams) must not flip the state.
		w.airTimer.Tick(ctx.Frame)
		if w.airTimer.Finished() {
			w.airborne = true
		}
	}

	w.springForce = 0
	w.hasFloor = contact
	w.offset = 0
	if contact {
		w.offset = w.FloatingHeight - ctx.Floor.Distance
		w.springForce = w.offset*w.Spring.Strength - vel.Dot(up)*w.Spring.Damper
		motion.AddLinear(Boost(up.Mul(w.springForce)))
		// Hold the body against gravity while it rides the spring.
		motion.AddLinear(Accel(up.Mul(-ctx.Gravity.Dot(up))))
	}

	if !w.airborne {
		delta := RejectAxis(w.Velocity.Sub(vel), up)
		if isZero(w.Velocity) {
			// Stopping is immediate so bodies do not slide.
			motion.AddLinear(Boost(delta))
		} else {
			motion.AddLinear(Accel(delta))
		}
	}

	spin := ctx.Velocity.Angular.Dot(up)
	var target float32
	if !w.airborne && !isZero(w.Facing) {
		dt := ctx.Seconds()
		if dt > 0 {
			current := ctx.Transform.Rotate(w.Forward)
			angle := PlanarAngle(current, w.Facing, up)
			target = Clamp(angle/dt, -w.TurningAngVel, w.TurningAngVel)
		}
	}
	motion.AddAngular(Boost(up.Mul(target - spin)))
}
