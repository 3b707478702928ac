package controller

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
)

// SensorOutput is the nearest thing a probe found.
type SensorOutput struct {
	Entity   ecs.Entity
	Distance float32
}

// QueryFilter narrows spatial queries.
type QueryFilter struct {
	Exclude        ecs.Entity // Usually the querying body itself; zero entity excludes nothing
	FixedOnly      bool       // Only static geometry
	ExcludeSensors bool       // Skip sensor colliders
}

// Caster answers spatial queries against the physics world.
// Implementations must be safe for concurrent readers.
type Caster interface {
	// CastRay returns the nearest collider hit by the segment origin + dir*[0, maxDistance].
	CastRay(origin, dir mgl32.Vec3, maxDistance float32, filter QueryFilter) (SensorOutput, bool)
	// CastBox sweeps a box with the given half extents along dir.
	CastBox(origin, halfExtents, dir mgl32.Vec3, maxDistance float32, filter QueryFilter) (SensorOutput, bool)
	// Overlap appends every collider intersecting box to dst.
	Overlap(box cube.BBox, filter QueryFilter, dst []ecs.Entity) []ecs.Entity
}

// ProximitySensor probes for the floor under a body.
// It holds the probe description and the result of the most recent cast.
type ProximitySensor struct {
	Origin      mgl32.Vec3 // Offset from the body translation
	Direction   mgl32.Vec3
	MaxDistance float32
	HalfExtents mgl32.Vec3 // Zero for a ray, otherwise the swept box

	Output SensorOutput
	Found  bool
}

// NewRaySensor returns a ray probe along dir.
func NewRaySensor(dir mgl32.Vec3, maxDistance float32) ProximitySensor {
	return ProximitySensor{Direction: dir.Normalize(), MaxDistance: maxDistance}
}

// NewBoxSensor returns a box-cast probe along dir.
func NewBoxSensor(dir, halfExtents mgl32.Vec3, maxDistance float32) ProximitySensor {
	return ProximitySensor{Direction: dir.Normalize(), MaxDistance: maxDistance, HalfExtents: halfExtents}
}

// Sense refreshes the sensor with exactly one cast. Only fixed, non-sensor
// colliders count and the body itself is never reported.
func (s *ProximitySensor) Sense(c Caster, self ecs.Entity, t components.Transform) {
	filter := QueryFilter{Exclude: self, FixedOnly: true, ExcludeSensors: true}
	origin := t.Translation.Add(s.Origin)
	if s.HalfExtents == (mgl32.Vec3{}) {
		s.Output, s.Found = c.CastRay(origin, s.Direction, s.MaxDistance, filter)
	} else {
		s.Output, s.Found = c.CastBox(origin, s.HalfExtents, s.Direction, s.MaxDistance, filter)
	}
	if !s.Found {
		s.Output = SensorOutput{}
	}
}

// Hit returns the last result.
func (s *ProximitySensor) Hit() (SensorOutput, bool) {
	return s.Output, s.Found
}
