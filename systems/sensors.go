package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// SensorSystem refreshes every character's proximity probe with one cast.
type SensorSystem struct {
	filter ecs.Filter2[controller.Character, components.Transform]
	caster controller.Caster
}

// NewSensorSystem creates a sensor system that casts against caster.
func NewSensorSystem(w *ecs.World, caster controller.Caster) *SensorSystem {
	return &SensorSystem{
		filter: *ecs.NewFilter2[controller.Character, components.Transform](w),
		caster: caster,
	}
}

// Update runs the sensor system.
func (s *SensorSystem) Update(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		ch, t := query.Get()
		ch.Sensor.Sense(s.caster, query.Entity(), *t)
	}
}
