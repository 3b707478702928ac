// Package camera provides a 3D orbit camera that follows a target.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point at a distance. Yaw is measured around +Y
// from the -Z axis, pitch is the elevation above the XZ plane.
type Camera struct {
	// Target is the smoothed point the camera looks at
	Target mgl32.Vec3

	Yaw, Pitch float32
	Distance   float32

	// Follow stiffness in 1/s; 0 snaps to the target
	Stiffness float32

	// Constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32
}

// Defaults used by New and Reset.
const (
	defaultYaw      = 0
	defaultPitch    = 0.6
	defaultDistance = 18
)

// New creates a camera looking at target from behind and above.
func New(target mgl32.Vec3) *Camera {
	return &Camera{
		Target:      target,
		Yaw:         defaultYaw,
		Pitch:       defaultPitch,
		Distance:    defaultDistance,
		Stiffness:   6,
		MinDistance: 4,
		MaxDistance: 80,
		MinPitch:    0.05,
		MaxPitch:    1.5,
	}
}

// Follow moves the target toward p with exponential smoothing over dt seconds.
func (c *Camera) Follow(p mgl32.Vec3, dt float32) {
	if c.Stiffness <= 0 || dt <= 0 {
		c.Target = p
		return
	}
	alpha := 1 - math32.Exp(-c.Stiffness*dt)
	c.Target = c.Target.Add(p.Sub(c.Target).Mul(alpha))
}

// Position returns the camera eye position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	back := mgl32.Vec3{
		-math32.Sin(c.Yaw) * cp,
		math32.Sin(c.Pitch),
		math32.Cos(c.Yaw) * cp,
	}
	return c.Target.Add(back.Mul(c.Distance))
}

// Forward returns the unit planar direction the camera faces.
func (c *Camera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(c.Yaw), 0, -math32.Cos(c.Yaw)}
}

// Right returns the unit planar direction to the camera's right.
func (c *Camera) Right() mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(c.Yaw), 0, math32.Sin(c.Yaw)}
}

// Relative maps a stick input (x right, y forward) to a world planar direction.
func (c *Camera) Relative(x, y float32) mgl32.Vec3 {
	return c.Right().Mul(x).Add(c.Forward().Mul(y))
}

// Orbit rotates the camera around the target by the given angles in radians.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the current distance by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to the default angles and distance.
func (c *Camera) Reset() {
	c.Yaw = defaultYaw
	c.Pitch = defaultPitch
	c.Distance = defaultDistance
}

// wrapAngle wraps an angle to [-Pi, Pi].
func wrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
