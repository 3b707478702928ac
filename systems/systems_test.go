package systems

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/brain"
	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/config"
	"github.com/pthm-cable/rogue/controller"
	"github.com/pthm-cable/rogue/physics"
	"github.com/pthm-cable/rogue/telemetry"
)

func init() {
	config.MustInit("")
}

// testWorld wires the systems the way the game does, over a flat floor at y=0.
type testWorld struct {
	w        *ecs.World
	space    *physics.Space
	registry *controller.Registry

	bodies *ecs.Map5[components.Transform, components.Velocity, components.Mass, components.Forces, components.Collider]
	extras *ecs.Map4[components.Body, components.Spawn, controller.Character, brain.Driver]

	spaceSys   *SpaceSystem
	sensors    *SensorSystem
	brains     *BrainSystem
	controller *ControllerSystem
	motion     *MotionSystem
	physics    *PhysicsSystem
	hitboxes   *HitboxSystem

	reports []Report
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	cfg := config.Cfg()
	w := ecs.NewWorld()
	space := physics.NewSpace()
	reg := controller.NewRegistry()
	controller.RegisterDefaults(reg, cfg)

	floor := ecs.NewMap2[components.Collider, components.Body](w)
	box := cube.Box(-50, -1, -50, 50, 0, 50)
	e := floor.NewEntity(&components.Collider{HalfExtents: mgl32.Vec3{50, 0.5, 50}, Fixed: true}, &components.Body{Kind: components.KindStatic})
	space.AddStatic(e, box, false)

	tw := &testWorld{
		w:          w,
		space:      space,
		registry:   reg,
		bodies:     ecs.NewMap5[components.Transform, components.Velocity, components.Mass, components.Forces, components.Collider](w),
		extras:     ecs.NewMap4[components.Body, components.Spawn, controller.Character, brain.Driver](w),
		spaceSys:   NewSpaceSystem(w, space),
		sensors:    NewSensorSystem(w, space),
		brains:     NewBrainSystem(w, reg),
		controller: NewControllerSystem(w, space, cfg.Derived.Gravity),
		motion:     NewMotionSystem(w),
		physics:    NewPhysicsSystem(w, space, cfg.Derived.Gravity, float32(cfg.Physics.MaxSpeed), cfg.Physics.Iterations, float32(cfg.Physics.KillPlane)),
		hitboxes:   NewHitboxSystem(w, space),
	}
	t.Cleanup(tw.controller.Close)
	return tw
}

func (tw *testWorld) spawn(pos mgl32.Vec3, kind components.Kind, b brain.Brain) ecs.Entity {
	cfg := config.Cfg()
	tr := components.NewTransform(pos)
	e := tw.bodies.NewEntity(
		&tr,
		&components.Velocity{},
		&components.Mass{Value: 1},
		&components.Forces{},
		&components.Collider{HalfExtents: cfg.Population.HalfExtents.V()},
	)
	tw.extras.Add(e,
		&components.Body{Kind: kind},
		&components.Spawn{Position: pos},
		&controller.Character{Sensor: controller.SensorFromConfig(cfg)},
		&brain.Driver{Brain: b},
	)
	return e
}

func (tw *testWorld) step() {
	cfg := config.Cfg()
	tw.spaceSys.Update(tw.w)
	tw.sensors.Update(tw.w)
	tw.brains.Update(tw.w, cfg.Derived.Tick)
	tw.controller.Update(tw.w, cfg.Derived.Tick)
	tw.reports = append(tw.reports, tw.controller.Reports...)
	tw.hitboxes.Spawn(tw.controller.Spawns)
	tw.motion.Update(tw.w)
	tw.physics.Update(tw.w, cfg.Derived.DT32)
	tw.spaceSys.Update(tw.w)
	tw.hitboxes.Update(tw.w, cfg.Derived.Tick)
}

func (tw *testWorld) transform(e ecs.Entity) components.Transform {
	tr, _, _, _, _ := tw.bodies.Get(e)
	return *tr
}

func (tw *testWorld) character(e ecs.Entity) *controller.Character {
	_, _, ch, _ := tw.extras.Get(e)
	return ch
}

// idle walks in place.
type idle struct{}

func (idle) Think(_ *brain.Perception, cmd *brain.Command) {
	cmd.Walk(mgl32.Vec3{}, mgl32.Vec3{})
}

func TestBodyFloatsAtRideHeight(t *testing.T) {
	tw := newTestWorld(t)
	e := tw.spawn(mgl32.Vec3{0, 2.5, 0}, components.KindWanderer, idle{})

	for i := 0; i < 300; i++ {
		tw.step()
	}

	ch := tw.character(e)
	floor, ok := ch.Sensor.Hit()
	if !ok {
		t.Fatal("sensor lost the floor")
	}
	height := float32(config.Cfg().Walk.FloatingHeight)
	if RideError(floor.Distance, height) > 0.05 {
		t.Errorf("ride distance = %f, want about %f", floor.Distance, height)
	}
	if ch.Controller.IsAirborne() {
		t.Error("resting body reported airborne")
	}
	pos := tw.transform(e).Translation
	if PlanarSpeed(pos) > 1e-3 {
		t.Errorf("idle body drifted to %v", pos)
	}
}

// walker walks at a fixed velocity.
type walker struct{ v mgl32.Vec3 }

func (b walker) Think(_ *brain.Perception, cmd *brain.Command) {
	cmd.Walk(b.v, mgl32.Vec3{})
}

func TestBodyWithoutMassIsSkipped(t *testing.T) {
	tw := newTestWorld(t)
	cfg := config.Cfg()

	partial := ecs.NewMap4[components.Transform, components.Velocity, components.Forces, components.Collider](tw.w)
	tr := components.NewTransform(mgl32.Vec3{0, 2, 0})
	e := partial.NewEntity(&tr, &components.Velocity{}, &components.Forces{},
		&components.Collider{HalfExtents: cfg.Population.HalfExtents.V()})
	tw.extras.Add(e,
		&components.Body{Kind: components.KindWanderer},
		&components.Spawn{Position: tr.Translation},
		&controller.Character{Sensor: controller.SensorFromConfig(cfg)},
		&brain.Driver{Brain: walker{v: mgl32.Vec3{4, 0, 0}}},
	)
	whole := tw.spawn(mgl32.Vec3{5, 2, 0}, components.KindWanderer, walker{v: mgl32.Vec3{4, 0, 0}})

	for i := 0; i < 5; i++ {
		tw.step()
	}

	ch := tw.character(e)
	if ch.Motion != (controller.Motion{}) {
		t.Errorf("motion piled up on a body that is never flushed: %+v", ch.Motion)
	}
	if ch.Controller.Basis() == nil {
		t.Error("brain should still install a basis")
	}
	for _, r := range tw.reports {
		if r.Entity == e {
			t.Errorf("controller ticked a body without mass: %+v", r)
		}
	}
	if v := tw.character(whole).Out.Force; v.X() <= 0 {
		t.Errorf("complete body got no walking force: %v", v)
	}
}

func TestJumperTakesOffAndLands(t *testing.T) {
	tw := newTestWorld(t)
	e := tw.spawn(mgl32.Vec3{0, 2, 0}, components.KindJumper, &brain.Jumper{})

	var started, takeoff, landing bool
	for i := 0; i < 240; i++ {
		tw.step()
		for _, r := range tw.reports {
			if r.Entity != e {
				continue
			}
			started = started || r.Started == controller.JumpName
			takeoff = takeoff || r.Takeoff
			landing = landing || (takeoff && r.Landing)
		}
		tw.reports = tw.reports[:0]
	}

	if !started {
		t.Error("jump never started")
	}
	if !takeoff {
		t.Error("no takeoff reported")
	}
	if !landing {
		t.Error("no landing reported after takeoff")
	}
}

func TestHitboxReportsEachTargetOnce(t *testing.T) {
	tw := newTestWorld(t)
	src := tw.spawn(mgl32.Vec3{0, 2, 0}, components.KindChaser, idle{})
	dst := tw.spawn(mgl32.Vec3{0, 2, -2}, components.KindWanderer, idle{})
	tw.spaceSys.Update(tw.w)

	tw.hitboxes.Spawn([]controller.HitboxRequest{{
		Source:      src,
		Center:      mgl32.Vec3{0, 2, -2},
		HalfExtents: mgl32.Vec3{0.2, 0.2, 0.8},
		Power:       3,
		Lifetime:    3 * config.Cfg().Derived.Tick,
	}})

	tw.hitboxes.Update(tw.w, config.Cfg().Derived.Tick)
	if len(tw.hitboxes.Hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(tw.hitboxes.Hits))
	}
	hit := tw.hitboxes.Hits[0]
	if hit.Source != src || hit.Target != dst || hit.Attack != 3 {
		t.Errorf("unexpected hit %+v", hit)
	}

	tw.hitboxes.Update(tw.w, config.Cfg().Derived.Tick)
	if len(tw.hitboxes.Hits) != 0 {
		t.Errorf("target reported again: %+v", tw.hitboxes.Hits)
	}

	tw.hitboxes.Update(tw.w, config.Cfg().Derived.Tick)
	filter := ecs.NewFilter1[components.Hitbox](tw.w)
	query := filter.Query()
	count := 0
	for query.Next() {
		count++
	}
	if count != 0 {
		t.Errorf("hitboxes alive after lifespan = %d, want 0", count)
	}
}

func TestControllerParallelMatchesSerial(t *testing.T) {
	run := func(n int) []mgl32.Vec3 {
		tw := newTestWorld(t)
		var ents []ecs.Entity
		for i := 0; i < n; i++ {
			x := float32(i%10)*3 - 15
			z := float32(i/10)*3 - 15
			ents = append(ents, tw.spawn(mgl32.Vec3{x, 2, z}, components.KindWanderer,
				brain.NewWandering(4, config.Cfg().Derived.Tick*30, 1, int64(i))))
		}
		for i := 0; i < 60; i++ {
			tw.step()
		}
		out := make([]mgl32.Vec3, len(ents))
		for i, e := range ents {
			out[i] = tw.transform(e).Translation
		}
		return out
	}

	// Same seeds, above the threshold both runs go through the pool.
	a := run(parallelThreshold + 16)
	b := run(parallelThreshold + 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d diverged: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name    string
		targets []mgl32.Vec3
		want    mgl32.Vec3
		ok      bool
	}{
		{"none", nil, mgl32.Vec3{}, false},
		{"self only", []mgl32.Vec3{{0, 0, 0}}, mgl32.Vec3{}, false},
		{"closest", []mgl32.Vec3{{5, 0, 0}, {0, 0, 2}, {0, 0, 0}}, mgl32.Vec3{0, 0, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nearest(mgl32.Vec3{}, tt.targets)
			if ok != tt.ok || got != tt.want {
				t.Errorf("nearest() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRideError(t *testing.T) {
	tests := []struct {
		distance, height, want float32
	}{
		{2, 2, 0},
		{1, 2, 0.5},
		{3, 2, 0.5},
		{9, 2, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := RideError(tt.distance, tt.height); got != tt.want {
			t.Errorf("RideError(%v, %v) = %v, want %v", tt.distance, tt.height, got, tt.want)
		}
	}
}

func TestSystemRegistryMatchesPhases(t *testing.T) {
	reg := NewSystemRegistry()
	ids := reg.IDs()
	if len(ids) != len(telemetry.Phases) {
		t.Fatalf("registry has %d systems, perf tracks %d phases", len(ids), len(telemetry.Phases))
	}
	for i, id := range ids {
		if id != telemetry.Phases[i] {
			t.Errorf("system %d = %q, phase = %q", i, id, telemetry.Phases[i])
		}
	}
	if got := reg.GetName("controller"); got != "Controller" {
		t.Errorf("GetName(controller) = %q", got)
	}
	if got := reg.GetName("missing"); got != "missing" {
		t.Errorf("GetName(missing) = %q, want fallback to ID", got)
	}
	if _, ok := reg.Get("physics"); !ok {
		t.Error("physics not registered")
	}
}
