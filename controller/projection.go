package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

// RejectAxis removes the component of v along the unit vector axis.
func RejectAxis(v, axis mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(axis.Mul(v.Dot(axis)))
}

// PlanarAngle returns the signed angle that rotates from onto to around up,
// measured after both are projected onto the plane perpendicular to up.
// Positive angles are counter-clockwise when looking down the up axis.
// Returns 0 when either vector has no planar component.
func PlanarAngle(from, to, up mgl32.Vec3) float32 {
	a := RejectAxis(from, up)
	b := RejectAxis(to, up)
	if a.Len() < epsilon || b.Len() < epsilon {
		return 0
	}
	return math32.Atan2(up.Dot(a.Cross(b)), a.Dot(b))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func isZero(v mgl32.Vec3) bool {
	return v == mgl32.Vec3{}
}
