package controller

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DashName is the registered name of the Dash action.
const DashName = "Dash"

// DashAdmission decides when a dash may start.
type DashAdmission uint8

const (
	DashAlways DashAdmission = iota
	DashAirborneOnly
	DashGroundedOnly
)

// ParseDashAdmission maps a config value to a DashAdmission.
func ParseDashAdmission(s string) (DashAdmission, error) {
	switch s {
	case "always", "":
		return DashAlways, nil
	case "airborne":
		return DashAirborneOnly, nil
	case "grounded":
		return DashGroundedOnly, nil
	default:
		return DashAlways, fmt.Errorf("unknown dash admission %q", s)
	}
}

type dashState uint8

const (
	dashIdle dashState = iota
	dashMoving
	dashDone
)

// Dash bursts the body along a direction for a fixed time, then brakes with
// an equal and opposite boost. It stops early, still braking, once no brain
// requests it.
type Dash struct {
	Direction mgl32.Vec3 // Unit direction of the burst
	Speed     float32
	Duration  time.Duration
	Admission DashAdmission

	state dashState
	timer Timer
}

// NewDash returns a dash along dir.
func NewDash(dir mgl32.Vec3, speed float32, d time.Duration, admission DashAdmission) *Dash {
	if !isZero(dir) {
		dir = dir.Normalize()
	}
	return &Dash{Direction: dir, Speed: speed, Duration: d, Admission: admission}
}

// Name implements Action.
func (d *Dash) Name() string { return DashName }

// Retune implements Action. The burst direction is fixed once the dash started.
func (d *Dash) Retune(next Action) {
	n, ok := next.(*Dash)
	if !ok {
		return
	}
	if d.state == dashIdle {
		d.Direction = n.Direction
		d.Speed = n.Speed
	}
	d.Duration = n.Duration
	d.Admission = n.Admission
	d.timer.SetDuration(n.Duration)
}

// InitiationDecision implements Action.
func (d *Dash) InitiationDecision(ctx *TickContext) Initiation {
	switch d.Admission {
	case DashAirborneOnly:
		if !ctx.IsAirborne() {
			return Reject
		}
	case DashGroundedOnly:
		if ctx.IsAirborne() {
			return Reject
		}
	}
	return Allow
}

// Apply implements Action.
func (d *Dash) Apply(ctx *TickContext, lifecycle Lifecycle, motion *Motion) Directive {
	if lifecycle == Started {
		d.state = dashIdle
	}

	switch d.state {
	case dashIdle:
		motion.AddLinear(Impulse(d.burst()))
		d.timer = NewTimer(d.Duration)
		d.state = dashMoving
		return Active
	case dashMoving:
		d.timer.Tick(ctx.Frame)
		if d.timer.Finished() || lifecycle == NoLongerFed {
			motion.AddLinear(Boost(d.burst().Mul(-1)))
			d.state = dashDone
			return Finished
		}
		return Active
	default:
		return Finished
	}
}

func (d *Dash) burst() mgl32.Vec3 {
	return d.Direction.Mul(d.Speed)
}
