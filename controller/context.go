package controller

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
)

// HitEvent reports that an attack reached a target. Resolving damage is up to the consumer.
type HitEvent struct {
	Source   ecs.Entity
	Target   ecs.Entity
	Attack   int32
	Distance float32
}

// HitSink receives hit events. It may be called from several goroutines.
type HitSink interface {
	Hit(HitEvent)
}

// HitboxRequest asks the world to spawn a detached attack volume.
type HitboxRequest struct {
	Source      ecs.Entity
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
	Power       int32
	Lifetime    time.Duration
}

// HitboxSpawner queues hitbox requests. Spawning is deferred until no
// query holds the world, so implementations only record the request.
type HitboxSpawner interface {
	SpawnHitbox(HitboxRequest)
}

// TickContext is the read-only view of one body that the basis and actions see during a tick.
type TickContext struct {
	Frame     time.Duration
	Self      ecs.Entity
	Transform components.Transform
	Velocity  components.Velocity
	Gravity   mgl32.Vec3

	// Floor is the proximity sensor result, valid when HasFloor is set.
	Floor    SensorOutput
	HasFloor bool

	Caster   Caster
	Hits     HitSink
	Hitboxes HitboxSpawner

	basis Basis
}

// Seconds returns the frame duration in seconds.
func (c *TickContext) Seconds() float32 {
	return float32(c.Frame.Seconds())
}

// Basis returns the body's active basis, or nil.
func (c *TickContext) Basis() Basis {
	return c.basis
}

// IsAirborne asks the basis whether the body is airborne. Without a basis the
// body counts as airborne whenever the sensor found nothing.
func (c *TickContext) IsAirborne() bool {
	if c.basis != nil {
		return c.basis.IsAirborne()
	}
	return !c.HasFloor
}
