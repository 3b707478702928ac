package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// MotionSystem flushes each controller's accumulated motion into physics
// inputs: force and torque are set for the coming step, boosts are added to
// velocity as-is, impulses are divided by mass and added after them.
type MotionSystem struct {
	filter ecs.Filter4[controller.Character, components.Velocity, components.Forces, components.Mass]
}

// NewMotionSystem creates a motion flush system.
func NewMotionSystem(w *ecs.World) *MotionSystem {
	return &MotionSystem{
		filter: *ecs.NewFilter4[controller.Character, components.Velocity, components.Forces, components.Mass](w),
	}
}

// Update runs the motion system.
func (s *MotionSystem) Update(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		ch, v, f, m := query.Get()
		out := ch.Motion.Flush(m.Value)
		ch.Out = out

		f.Force = out.Force
		f.Torque = out.Torque

		v.Linear = v.Linear.Add(out.LinearBoost)
		v.Angular = v.Angular.Add(out.AngularBoost)
		if m.Value > 0 {
			inv := 1 / m.Value
			v.Linear = v.Linear.Add(out.LinearImpulse.Mul(inv))
			v.Angular = v.Angular.Add(out.AngularImpulse.Mul(inv))
		}
	}
}
