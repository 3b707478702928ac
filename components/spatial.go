package components

import "github.com/go-gl/mathgl/mgl32"

// Transform represents an entity's pose in world space.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// NewTransform returns a transform at pos with identity rotation.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Translation: pos, Rotation: mgl32.QuatIdent()}
}

// Rotate returns v rotated by the transform's orientation.
func (t Transform) Rotate(v mgl32.Vec3) mgl32.Vec3 {
	if t.Rotation.Len() == 0 {
		return v
	}
	return t.Rotation.Rotate(v)
}

// Velocity represents an entity's linear and angular velocity (world space, per second).
type Velocity struct {
	Linear  mgl32.Vec3
	Angular mgl32.Vec3
}
