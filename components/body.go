package components

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Mass holds a dynamic body's mass in kilograms.
type Mass struct {
	Value float32
}

// Forces is the external force and torque applied during the current physics step.
// It is overwritten every tick, never accumulated across ticks.
type Forces struct {
	Force  mgl32.Vec3
	Torque mgl32.Vec3
}

// Collider is an axis-aligned box centred on the entity's translation.
type Collider struct {
	HalfExtents mgl32.Vec3
	Fixed       bool // Static geometry, never integrated
	Sensor      bool // Reports overlaps but is ignored by casts and contact resolution
}

// Box returns the collider's bounds when centred at pos.
func (c Collider) Box(pos mgl32.Vec3) cube.BBox {
	lo := pos.Sub(c.HalfExtents)
	hi := pos.Add(c.HalfExtents)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// Spawn remembers where a body entered the world so it can be put back after falling out.
type Spawn struct {
	Position mgl32.Vec3
}
