package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/physics"
)

// SpaceSystem mirrors moving colliders into the physics space so casts and
// overlaps see this tick's positions. Static colliders are indexed once when
// the map is built.
type SpaceSystem struct {
	filter ecs.Filter2[components.Transform, components.Collider]
	space  *physics.Space
}

// NewSpaceSystem creates a space sync system.
func NewSpaceSystem(w *ecs.World, space *physics.Space) *SpaceSystem {
	return &SpaceSystem{
		filter: *ecs.NewFilter2[components.Transform, components.Collider](w),
		space:  space,
	}
}

// Update rebuilds the dynamic collider set.
func (s *SpaceSystem) Update(w *ecs.World) {
	s.space.ResetDynamic()
	query := s.filter.Query()
	for query.Next() {
		t, c := query.Get()
		if c.Fixed {
			continue
		}
		s.space.AddDynamic(query.Entity(), c.Box(t.Translation), c.Sensor)
	}
}
