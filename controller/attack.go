package controller

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// AttackName is the registered name of the Attack action.
const AttackName = "Attack"

// AttackMode selects how the swing finds its target.
type AttackMode uint8

const (
	// AttackRay casts a ray along the body's forward direction.
	AttackRay AttackMode = iota
	// AttackHitbox spawns a short-lived box in front of the body.
	AttackHitbox
)

// ParseAttackMode maps a config value to an AttackMode.
func ParseAttackMode(s string) (AttackMode, error) {
	switch s {
	case "ray", "":
		return AttackRay, nil
	case "hitbox":
		return AttackHitbox, nil
	default:
		return AttackRay, fmt.Errorf("unknown attack mode %q", s)
	}
}

type attackState uint8

const (
	attackIdle attackState = iota
	attackWindUp
	attackBackswing
	attackDone
)

// Attack is a committed swing: wind-up, a single hit test, then backswing.
// It does not react to feeding, once started it runs to the end.
type Attack struct {
	Mode      AttackMode
	WindUp    time.Duration
	Backswing time.Duration
	Range     float32
	Power     int32
	Forward   mgl32.Vec3 // Local forward of an unrotated body
	Up        mgl32.Vec3

	HitboxHalfExtents mgl32.Vec3
	HitboxForward     float32
	HitboxUp          float32
	HitboxLifetime    time.Duration

	state attackState
	timer Timer
}

// Name implements Action.
func (a *Attack) Name() string { return AttackName }

// Retune implements Action.
func (a *Attack) Retune(next Action) {
	n, ok := next.(*Attack)
	if !ok {
		return
	}
	state, timer := a.state, a.timer
	*a = *n
	a.state, a.timer = state, timer
}

// InitiationDecision implements Action.
func (a *Attack) InitiationDecision(*TickContext) Initiation {
	return Allow
}

// Apply implements Action.
func (a *Attack) Apply(ctx *TickContext, lifecycle Lifecycle, _ *Motion) Directive {
	if lifecycle == Started {
		a.state = attackWindUp
		a.timer = NewTimer(a.WindUp)
		return Active
	}

	switch a.state {
	case attackWindUp:
		a.timer.Tick(ctx.Frame)
		if a.timer.Finished() {
			a.strike(ctx)
			a.state = attackBackswing
			a.timer = NewTimer(a.Backswing)
		}
		return Active
	case attackBackswing:
		a.timer.Tick(ctx.Frame)
		if a.timer.Finished() {
			a.state = attackDone
			return Finished
		}
		return Active
	default:
		return Finished
	}
}

func (a *Attack) strike(ctx *TickContext) {
	forward := ctx.Transform.Rotate(a.Forward)
	switch a.Mode {
	case AttackHitbox:
		if ctx.Hitboxes == nil {
			return
		}
		center := ctx.Transform.Translation.Add(forward.Mul(a.HitboxForward)).Add(a.Up.Mul(a.HitboxUp))
		ctx.Hitboxes.SpawnHitbox(HitboxRequest{
			Source:      ctx.Self,
			Center:      center,
			HalfExtents: a.HitboxHalfExtents,
			Power:       a.Power,
			Lifetime:    a.HitboxLifetime,
		})
	default:
		if ctx.Caster == nil || ctx.Hits == nil {
			return
		}
		filter := QueryFilter{Exclude: ctx.Self, ExcludeSensors: true}
		hit, ok := ctx.Caster.CastRay(ctx.Transform.Translation, forward, a.Range, filter)
		if !ok {
			return
		}
		ctx.Hits.Hit(HitEvent{Source: ctx.Self, Target: hit.Entity, Attack: a.Power, Distance: hit.Distance})
	}
}
