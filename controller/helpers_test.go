package controller

import (
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
)

// tick is one 60 Hz frame, truncated to whole nanoseconds like config.Seconds(1.0/60).
const tick = 16666666 * time.Nanosecond

// takeoffWindow matches jump.takeoff_timeout in the defaults.
const takeoffWindow = 750 * time.Millisecond

var (
	up      = mgl32.Vec3{0, 1, 0}
	forward = mgl32.Vec3{0, 0, -1}
)

type fakeCaster struct {
	out   SensorOutput
	found bool

	rays, boxes int
	filter      QueryFilter
	origin      mgl32.Vec3
	dir         mgl32.Vec3
}

func (f *fakeCaster) CastRay(origin, dir mgl32.Vec3, _ float32, filter QueryFilter) (SensorOutput, bool) {
	f.rays++
	f.origin, f.dir, f.filter = origin, dir, filter
	return f.out, f.found
}

func (f *fakeCaster) CastBox(origin, _, dir mgl32.Vec3, _ float32, filter QueryFilter) (SensorOutput, bool) {
	f.boxes++
	f.origin, f.dir, f.filter = origin, dir, filter
	return f.out, f.found
}

func (f *fakeCaster) Overlap(cube.BBox, QueryFilter, []ecs.Entity) []ecs.Entity { return nil }

type hitLog []HitEvent

func (h *hitLog) Hit(e HitEvent) { *h = append(*h, e) }

type hitboxLog []HitboxRequest

func (h *hitboxLog) SpawnHitbox(r HitboxRequest) { *h = append(*h, r) }

func testWalkParams() WalkParams {
	return WalkParams{
		Up:             up,
		Forward:        forward,
		FloatingHeight: 2,
		FloatingMargin: 0.1,
		Spring:         Spring{Strength: 10, Damper: 0.8},
		TurningAngVel:  5,
		AirborneGrace:  150 * time.Millisecond,
	}
}

// grounded returns a context for a body resting with the floor dist below the sensor.
func grounded(dist float32) *TickContext {
	return &TickContext{
		Frame:     tick,
		Transform: components.NewTransform(mgl32.Vec3{0, dist, 0}),
		Floor:     SensorOutput{Distance: dist},
		HasFloor:  true,
	}
}

// inAir returns a context whose sensor found nothing.
func inAir() *TickContext {
	return &TickContext{
		Frame:     tick,
		Transform: components.NewTransform(mgl32.Vec3{0, 10, 0}),
	}
}

func newEntities(n int) []ecs.Entity {
	w := ecs.NewWorld()
	m := ecs.NewMap[components.Mass](w)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = m.NewEntity(&components.Mass{Value: 1})
	}
	return out
}

// scriptedAction is a test action with a scripted sequence of directives.
type scriptedAction struct {
	name       string
	initiation Initiation
	directive  func(Lifecycle) Directive
	applied    []Lifecycle
	retunes    int
}

func (a *scriptedAction) Name() string { return a.name }

func (a *scriptedAction) Retune(Action) { a.retunes++ }

func (a *scriptedAction) InitiationDecision(*TickContext) Initiation { return a.initiation }

func (a *scriptedAction) Apply(_ *TickContext, l Lifecycle, _ *Motion) Directive {
	a.applied = append(a.applied, l)
	if a.directive == nil {
		return FinishWhenUnfed(l)
	}
	return a.directive(l)
}
