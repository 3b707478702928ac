// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/physics"
)

// PhysicsSystem integrates dynamic bodies and resolves them against static geometry.
type PhysicsSystem struct {
	filter     ecs.Filter5[components.Transform, components.Velocity, components.Forces, components.Mass, components.Collider]
	spawns     *ecs.Map[components.Spawn]
	integrator physics.Integrator
	killPlane  float32

	// Respawned counts bodies put back at their spawn point since creation.
	Respawned int
	// Respawns lists the bodies respawned by the last Update.
	Respawns []ecs.Entity
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, space *physics.Space, gravity mgl32.Vec3, maxSpeed float32, iterations int, killPlane float32) *PhysicsSystem {
	return &PhysicsSystem{
		filter: *ecs.NewFilter5[components.Transform, components.Velocity, components.Forces, components.Mass, components.Collider](w),
		spawns: ecs.NewMap[components.Spawn](w),
		integrator: physics.Integrator{
			Space:      space,
			Gravity:    gravity,
			MaxSpeed:   maxSpeed,
			Iterations: iterations,
		},
		killPlane: killPlane,
	}
}

// Update advances every dynamic body by dt seconds.
func (s *PhysicsSystem) Update(w *ecs.World, dt float32) {
	s.Respawns = s.Respawns[:0]
	query := s.filter.Query()
	for query.Next() {
		t, v, f, m, c := query.Get()
		if c.Fixed || c.Sensor {
			continue
		}
		s.integrator.Step(dt, t, v, *c, *f, m.Value)

		if t.Translation.Y() < s.killPlane {
			e := query.Entity()
			if s.spawns.Has(e) {
				*t = components.NewTransform(s.spawns.Get(e).Position)
				*v = components.Velocity{}
				s.Respawned++
				s.Respawns = append(s.Respawns, e)
			}
		}
	}
}
