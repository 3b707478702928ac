package controller

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// JumpName is the registered name of the Jump action.
const JumpName = "Jump"

type jumpState uint8

const (
	jumpIdle jumpState = iota
	jumpTakeoff
	jumpRising
	jumpLanded
)

// Jump launches the body off the floor and stays active until it lands again.
// It ignores feeding: releasing the button does not cut the jump short.
// A jump that never gets airborne within Takeoff finishes anyway.
type Jump struct {
	Velocity mgl32.Vec3    // Velocity change applied at takeoff
	Takeoff  time.Duration // Time allowed to leave the floor

	state   jumpState
	takeoff Timer
}

// NewJump returns a jump that changes velocity by v at takeoff and gives up
// when the body is still grounded after takeoff.
func NewJump(v mgl32.Vec3, takeoff time.Duration) *Jump {
	return &Jump{Velocity: v, Takeoff: takeoff}
}

// Name implements Action.
func (j *Jump) Name() string { return JumpName }

// Retune implements Action.
func (j *Jump) Retune(next Action) {
	if n, ok := next.(*Jump); ok {
		j.Velocity = n.Velocity
		j.Takeoff = n.Takeoff
		j.takeoff.SetDuration(n.Takeoff)
	}
}

// InitiationDecision implements Action. Jumping needs ground under the body.
func (j *Jump) InitiationDecision(ctx *TickContext) Initiation {
	if ctx.IsAirborne() {
		return Reject
	}
	return Allow
}

// Apply implements Action.
func (j *Jump) Apply(ctx *TickContext, lifecycle Lifecycle, motion *Motion) Directive {
	if lifecycle == Started {
		j.state = jumpIdle
		j.takeoff = NewTimer(j.Takeoff)
	}

	switch j.state {
	case jumpIdle:
		motion.AddLinear(Impulse(j.Velocity))
		j.cancelSpring(ctx, motion)
		j.state = jumpTakeoff
		return Active
	case jumpTakeoff:
		j.cancelSpring(ctx, motion)
		if ctx.IsAirborne() {
			j.state = jumpRising
			return Active
		}
		j.takeoff.Tick(ctx.Frame)
		if j.takeoff.Finished() {
			j.state = jumpLanded
			return Finished
		}
		return Active
	case jumpRising:
		if !ctx.IsAirborne() {
			j.state = jumpLanded
			return Finished
		}
		return Active
	default:
		return Finished
	}
}

// cancelSpring undoes the basis spring when it pulls the body back down,
// so the floor does not fight the takeoff.
func (j *Jump) cancelSpring(ctx *TickContext, motion *Motion) {
	sb, ok := ctx.Basis().(SpringBasis)
	if !ok {
		return
	}
	if f := sb.SpringForce(); f < 0 {
		motion.AddLinear(Boost(sb.UpAxis().Mul(-f)))
	}
}
