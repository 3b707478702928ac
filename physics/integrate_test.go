package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/rogue/components"
)

var unitBody = components.Collider{HalfExtents: mgl32.Vec3{0.5, 0.5, 0.5}}

func TestStepFreeFall(t *testing.T) {
	in := &Integrator{Gravity: mgl32.Vec3{0, -10, 0}}
	tr := components.NewTransform(mgl32.Vec3{0, 10, 0})
	var v components.Velocity

	in.Step(0.1, &tr, &v, unitBody, components.Forces{}, 1)

	// Semi-implicit: velocity first, then position with the new velocity.
	assert.InDelta(t, -1, v.Linear.Y(), 1e-5)
	assert.InDelta(t, 9.9, tr.Translation.Y(), 1e-5)
}

func TestStepForceScalesWithMass(t *testing.T) {
	in := &Integrator{}
	tests := []struct {
		name string
		mass float32
		want float32
	}{
		{"unit", 1, 1},
		{"heavy", 4, 0.25},
		{"massless", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := components.NewTransform(mgl32.Vec3{})
			var v components.Velocity
			in.Step(0.1, &tr, &v, unitBody, components.Forces{Force: mgl32.Vec3{10, 0, 0}}, tt.mass)
			assert.InDelta(t, tt.want, v.Linear.X(), 1e-5)
		})
	}
}

func TestStepMaxSpeed(t *testing.T) {
	in := &Integrator{MaxSpeed: 5}
	tr := components.NewTransform(mgl32.Vec3{})
	v := components.Velocity{Linear: mgl32.Vec3{30, 0, 40}}

	in.Step(0.1, &tr, &v, unitBody, components.Forces{}, 1)

	assert.InDelta(t, 5, v.Linear.Len(), 1e-4)
	assert.InDelta(t, 3, v.Linear.X(), 1e-4)
}

func TestStepLandsOnFloor(t *testing.T) {
	e := newEntities(1)
	in := &Integrator{Space: floorSpace(e[0]), Iterations: 4}
	tr := components.NewTransform(mgl32.Vec3{0, 0.6, 0})
	v := components.Velocity{Linear: mgl32.Vec3{0, -10, 0}}

	c := in.Step(0.1, &tr, &v, unitBody, components.Forces{}, 1)

	assert.True(t, c.Ground)
	assert.False(t, c.Wall)
	assert.InDelta(t, 0.5, tr.Translation.Y(), 1e-5)
	assert.Zero(t, v.Linear.Y())
}

func TestStepSlidesAlongWall(t *testing.T) {
	e := newEntities(2)
	s := floorSpace(e[0])
	s.AddStatic(e[1], cube.Box(2, -5, -5, 3, 5, 5), false)
	in := &Integrator{Space: s, Iterations: 4}
	tr := components.NewTransform(mgl32.Vec3{1, 0.5, 0})
	v := components.Velocity{Linear: mgl32.Vec3{10, 0, 5}}

	c := in.Step(0.1, &tr, &v, unitBody, components.Forces{}, 1)

	assert.True(t, c.Wall)
	assert.InDelta(t, 1.5, tr.Translation.X(), 1e-5)
	assert.InDelta(t, 0.5, tr.Translation.Z(), 1e-5)
	assert.Zero(t, v.Linear.X())
	assert.InDelta(t, 5, v.Linear.Z(), 1e-5)
}

func TestStepPushesOutOfFloor(t *testing.T) {
	e := newEntities(1)
	in := &Integrator{Space: floorSpace(e[0]), Iterations: 4}
	tr := components.NewTransform(mgl32.Vec3{0, 0.3, 0})
	var v components.Velocity

	in.Step(0.1, &tr, &v, unitBody, components.Forces{}, 1)

	assert.InDelta(t, 0.5, tr.Translation.Y(), 1e-5)
}

func TestStepRotation(t *testing.T) {
	in := &Integrator{}
	tr := components.NewTransform(mgl32.Vec3{})
	v := components.Velocity{Angular: mgl32.Vec3{0, math32.Pi, 0}}

	in.Step(1, &tr, &v, unitBody, components.Forces{}, 1)

	got := tr.Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, 0, got.X(), 1e-4)
	assert.InDelta(t, 1, got.Z(), 1e-4)
	assert.InDelta(t, 1, tr.Rotation.Len(), 1e-5)
}
