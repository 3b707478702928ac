package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// HitboxSystem spawns detached attack volumes, reports the bodies they start
// touching and removes them when their lifespan runs out.
type HitboxSystem struct {
	filter ecs.Filter4[components.Transform, components.Collider, components.Hitbox, components.Lifespan]
	mapper *ecs.Map4[components.Transform, components.Collider, components.Hitbox, components.Lifespan]
	bodies *ecs.Map[components.Body]
	caster controller.Caster

	overlaps []ecs.Entity
	expired  []ecs.Entity

	// Hits holds the collision starts of the last Update.
	Hits []controller.HitEvent
}

// NewHitboxSystem creates a hitbox system.
func NewHitboxSystem(w *ecs.World, caster controller.Caster) *HitboxSystem {
	return &HitboxSystem{
		filter: *ecs.NewFilter4[components.Transform, components.Collider, components.Hitbox, components.Lifespan](w),
		mapper: ecs.NewMap4[components.Transform, components.Collider, components.Hitbox, components.Lifespan](w),
		bodies: ecs.NewMap[components.Body](w),
		caster: caster,
	}
}

// Spawn creates one hitbox entity per request.
func (s *HitboxSystem) Spawn(reqs []controller.HitboxRequest) {
	for _, r := range reqs {
		t := components.NewTransform(r.Center)
		c := components.Collider{HalfExtents: r.HalfExtents, Sensor: true}
		h := components.Hitbox{Source: r.Source, Power: r.Power}
		l := components.Lifespan{Remaining: r.Lifetime}
		s.mapper.NewEntity(&t, &c, &h, &l)
	}
}

// Update reports new contacts and ages every hitbox by frame.
func (s *HitboxSystem) Update(w *ecs.World, frame time.Duration) {
	s.Hits = s.Hits[:0]
	s.expired = s.expired[:0]

	query := s.filter.Query()
	for query.Next() {
		t, c, h, l := query.Get()

		filter := controller.QueryFilter{Exclude: h.Source, ExcludeSensors: true}
		s.overlaps = s.caster.Overlap(c.Box(t.Translation), filter, s.overlaps[:0])
		for _, target := range s.overlaps {
			if h.AlreadyHit(target) || !s.isCharacter(target) {
				continue
			}
			h.Hit = append(h.Hit, target)
			s.Hits = append(s.Hits, controller.HitEvent{Source: h.Source, Target: target, Attack: h.Power})
		}

		l.Remaining -= frame
		if l.Remaining <= 0 {
			s.expired = append(s.expired, query.Entity())
		}
	}

	for _, e := range s.expired {
		w.RemoveEntity(e)
	}
}

func (s *HitboxSystem) isCharacter(e ecs.Entity) bool {
	return s.bodies.Has(e) && s.bodies.Get(e).Kind != components.KindStatic
}
