package physics

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/rogue/components"
)

// Contact records which sides of a body touched static geometry during a step.
type Contact struct {
	Ground  bool
	Ceiling bool
	Wall    bool
}

// Integrator advances dynamic bodies with semi-implicit Euler and resolves
// them against the static colliders of a Space. It keeps scratch buffers and
// must only be used from one goroutine.
type Integrator struct {
	Space      *Space
	Gravity    mgl32.Vec3
	MaxSpeed   float32 // 0 disables the clamp
	Iterations int     // Depenetration passes

	nearby []cube.BBox
}

// Step integrates one body for dt seconds. Force and torque are held for the
// whole step; gravity is added on top. Movement is applied axis by axis, up
// axis first, so bodies slide along walls instead of sticking to them.
func (in *Integrator) Step(dt float32, t *components.Transform, v *components.Velocity,
	c components.Collider, f components.Forces, mass float32) Contact {

	invMass := float32(0)
	if mass > 0 {
		invMass = 1 / mass
	}
	v.Linear = v.Linear.Add(f.Force.Mul(invMass).Add(in.Gravity).Mul(dt))
	v.Angular = v.Angular.Add(f.Torque.Mul(invMass * dt))

	if in.MaxSpeed > 0 {
		if speed := v.Linear.Len(); speed > in.MaxSpeed {
			v.Linear = v.Linear.Mul(in.MaxSpeed / speed)
		}
	}

	delta := v.Linear.Mul(dt)
	box := c.Box(t.Translation)

	var contact Contact
	if in.Space != nil {
		in.nearby = in.Space.Statics(spanBox(center(box), center(box).Add(delta), c.HalfExtents.Add(mgl32.Vec3{1, 1, 1})), in.nearby[:0])

		for i := 0; i < in.Iterations; i++ {
			moved := false
			for _, s := range in.nearby {
				if push := depenetration(box, s); push != (mgl32.Vec3{}) {
					box = box.Translate(push)
					moved = true
				}
			}
			if !moved {
				break
			}
		}

		for _, axis := range [3]int{1, 0, 2} {
			d := delta[axis]
			for _, s := range in.nearby {
				d = clipAxis(box, s, axis, d)
			}
			if d != delta[axis] {
				switch {
				case axis == 1 && delta[axis] < 0:
					contact.Ground = true
				case axis == 1:
					contact.Ceiling = true
				default:
					contact.Wall = true
				}
				v.Linear[axis] = 0
			}
			box = box.Translate(axisVec(axis, d))
		}
		t.Translation = center(box)
	} else {
		t.Translation = t.Translation.Add(delta)
	}

	t.Rotation = integrateRotation(t.Rotation, v.Angular, dt)
	return contact
}

// integrateRotation turns q by angular velocity w over dt.
func integrateRotation(q mgl32.Quat, w mgl32.Vec3, dt float32) mgl32.Quat {
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}
	speed := w.Len()
	if speed < 1e-6 {
		return q
	}
	angle := speed * dt
	if math32.Abs(angle) < 1e-9 {
		return q
	}
	return mgl32.QuatRotate(angle, w.Mul(1/speed)).Mul(q).Normalize()
}
