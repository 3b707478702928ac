package systems

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PlanarSpeed returns the length of v without its vertical component.
func PlanarSpeed(v mgl32.Vec3) float32 {
	return mgl32.Vec2{v[0], v[2]}.Len()
}

// RideError returns how far a floor distance is from the wanted floating
// height, as a fraction of that height clamped to [0, 1].
func RideError(distance, height float32) float32 {
	if height <= 0 {
		return 0
	}
	return clamp01(math32.Abs(distance-height) / height)
}
