package physics

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

const contactEpsilon = 1e-7

// overlapsOn reports whether a and b overlap strictly on axis.
func overlapsOn(a, b cube.BBox, axis int) bool {
	return a.Max()[axis] > b.Min()[axis]+contactEpsilon && a.Min()[axis] < b.Max()[axis]-contactEpsilon
}

// clipAxis limits a move of moving by delta along axis so it stops at the face of stationary.
func clipAxis(moving, stationary cube.BBox, axis int, delta float32) float32 {
	for other := 0; other < 3; other++ {
		if other != axis && !overlapsOn(moving, stationary, other) {
			return delta
		}
	}
	switch {
	case delta > 0 && moving.Max()[axis] <= stationary.Min()[axis]+contactEpsilon:
		return math32.Min(delta, stationary.Min()[axis]-moving.Max()[axis])
	case delta < 0 && moving.Min()[axis] >= stationary.Max()[axis]-contactEpsilon:
		return math32.Max(delta, stationary.Max()[axis]-moving.Min()[axis])
	default:
		return delta
	}
}

// depenetration returns the smallest translation that separates moving from stationary,
// or the zero vector when they do not overlap.
func depenetration(moving, stationary cube.BBox) mgl32.Vec3 {
	var push mgl32.Vec3
	best := float32(math32.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if !overlapsOn(moving, stationary, axis) {
			return mgl32.Vec3{}
		}
		up := stationary.Max()[axis] - moving.Min()[axis]
		down := moving.Max()[axis] - stationary.Min()[axis]
		if up < best {
			best = up
			push = mgl32.Vec3{}
			push[axis] = up
		}
		if down < best {
			best = down
			push = mgl32.Vec3{}
			push[axis] = -down
		}
	}
	return push
}

func axisVec(axis int, d float32) mgl32.Vec3 {
	var v mgl32.Vec3
	v[axis] = d
	return v
}

func center(b cube.BBox) mgl32.Vec3 {
	return b.Min().Add(b.Max()).Mul(0.5)
}
