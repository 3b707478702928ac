package main

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/brain"
	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/config"
	"github.com/pthm-cable/rogue/controller"
	"github.com/pthm-cable/rogue/physics"
	"github.com/pthm-cable/rogue/systems"
)

// settleTolerance is the relative ride error a settled body stays within.
const settleTolerance = 0.02

// DropResult summarizes one drop test.
type DropResult struct {
	SettleTicks int     // First tick after which the body stays settled; Ticks if never
	Overshoot   float64 // Largest relative error after first reaching the tolerance
	MeanError   float64 // Mean relative ride error over the run
	Lost        bool    // Sensor never found the floor
}

// idle walks in place.
type idle struct{}

func (idle) Think(_ *brain.Perception, cmd *brain.Command) {
	cmd.Walk(mgl32.Vec3{}, mgl32.Vec3{})
}

// RunDrop drops one body from drop units above its floating height onto a flat
// floor and records how its ride height settles.
func RunDrop(cfg *config.Config, drop float32, ticks int) DropResult {
	w := ecs.NewWorld()
	space := physics.NewSpace()
	reg := controller.NewRegistry()
	controller.RegisterDefaults(reg, cfg)

	floor := ecs.NewMap3[components.Transform, components.Collider, components.Body](w)
	ft := components.NewTransform(mgl32.Vec3{0, -0.5, 0})
	fe := floor.NewEntity(&ft,
		&components.Collider{HalfExtents: mgl32.Vec3{20, 0.5, 20}, Fixed: true},
		&components.Body{Kind: components.KindStatic})
	space.AddStatic(fe, cube.Box(-20, -1, -20, 20, 0, 20), false)

	height := float32(cfg.Walk.FloatingHeight)
	pos := mgl32.Vec3{0, height + drop, 0}
	bodies := ecs.NewMap5[components.Transform, components.Velocity, components.Mass, components.Forces, components.Collider](w)
	extras := ecs.NewMap2[controller.Character, brain.Driver](w)
	t := components.NewTransform(pos)
	e := bodies.NewEntity(&t, &components.Velocity{}, &components.Mass{Value: float32(cfg.Population.Mass)},
		&components.Forces{}, &components.Collider{HalfExtents: cfg.Population.HalfExtents.V()})
	extras.Add(e, &controller.Character{Sensor: controller.SensorFromConfig(cfg)}, &brain.Driver{Brain: idle{}})

	gravity := cfg.Derived.Gravity
	spaceSys := systems.NewSpaceSystem(w, space)
	sensors := systems.NewSensorSystem(w, space)
	brains := systems.NewBrainSystem(w, reg)
	ctrl := systems.NewControllerSystem(w, space, gravity)
	defer ctrl.Close()
	motion := systems.NewMotionSystem(w)
	phys := systems.NewPhysicsSystem(w, space, gravity, float32(cfg.Physics.MaxSpeed), cfg.Physics.Iterations, float32(cfg.Physics.KillPlane))

	res := DropResult{SettleTicks: ticks, Lost: true}
	var sum float64
	settled, reached := false, false
	for i := 0; i < ticks; i++ {
		spaceSys.Update(w)
		sensors.Update(w)
		brains.Update(w, cfg.Derived.Tick)
		ctrl.Update(w, cfg.Derived.Tick)
		motion.Update(w)
		phys.Update(w, cfg.Derived.DT32)

		ch, _ := extras.Get(e)
		errRel := 1.0
		if hit, ok := ch.Sensor.Hit(); ok {
			errRel = float64(systems.RideError(hit.Distance, height))
			res.Lost = false
		}
		sum += errRel

		if reached {
			res.Overshoot = max(res.Overshoot, errRel)
		}
		reached = reached || errRel <= settleTolerance
		switch {
		case errRel <= settleTolerance && !settled:
			settled = true
			res.SettleTicks = i
		case errRel > settleTolerance:
			settled = false
			res.SettleTicks = ticks
		}
	}
	res.MeanError = sum / float64(ticks)
	return res
}
