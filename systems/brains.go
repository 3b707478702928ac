package systems

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/brain"
	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// BrainSystem lets every driven character pick its basis and actions for the tick.
// Brains run in query order, so when two brains drive one body the later one wins.
type BrainSystem struct {
	filter   ecs.Filter4[brain.Driver, controller.Character, components.Transform, components.Velocity]
	players  ecs.Filter2[components.Player, components.Transform]
	registry *controller.Registry

	targets []mgl32.Vec3
	err     error
	errors  int
}

// NewBrainSystem creates a brain system building movement from registry.
func NewBrainSystem(w *ecs.World, registry *controller.Registry) *BrainSystem {
	return &BrainSystem{
		filter:   *ecs.NewFilter4[brain.Driver, controller.Character, components.Transform, components.Velocity](w),
		players:  *ecs.NewFilter2[components.Player, components.Transform](w),
		registry: registry,
	}
}

// Update runs every brain once.
func (s *BrainSystem) Update(w *ecs.World, frame time.Duration) {
	s.targets = s.targets[:0]
	pq := s.players.Query()
	for pq.Next() {
		_, t := pq.Get()
		s.targets = append(s.targets, t.Translation)
	}

	query := s.filter.Query()
	for query.Next() {
		d, ch, t, v := query.Get()
		if d.Brain == nil {
			continue
		}
		p := brain.Perception{
			Self:      query.Entity(),
			Frame:     frame,
			Age:       d.Age,
			Transform: *t,
			Velocity:  *v,
			Airborne:  ch.Controller.IsAirborne(),
		}
		p.Target, p.HasTarget = nearest(t.Translation, s.targets)

		cmd := brain.NewCommand(s.registry, &ch.Controller)
		d.Brain.Think(&p, &cmd)
		if err := cmd.Err(); err != nil {
			if s.err == nil {
				s.err = err
			}
			s.errors++
		}
		d.Age += frame
	}
}

// Errors returns how many brain ticks failed and the first error seen.
func (s *BrainSystem) Errors() (int, error) {
	return s.errors, s.err
}

// nearest returns the target closest to from, ignoring targets at from itself.
func nearest(from mgl32.Vec3, targets []mgl32.Vec3) (mgl32.Vec3, bool) {
	var best mgl32.Vec3
	bestDist := float32(-1)
	for _, t := range targets {
		diff := t.Sub(from)
		d := diff.Dot(diff)
		if d < 1e-8 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, bestDist >= 0
}
