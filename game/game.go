// Package game assembles the world, runs the fixed-step simulation and draws
// the debug viewer.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/brain"
	"github.com/pthm-cable/rogue/camera"
	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/config"
	"github.com/pthm-cable/rogue/controller"
	"github.com/pthm-cable/rogue/physics"
	"github.com/pthm-cable/rogue/systems"
	"github.com/pthm-cable/rogue/telemetry"
	"github.com/pthm-cable/rogue/ui"
)

// Game holds the complete simulation state.
type Game struct {
	cfg      *config.Config
	world    *ecs.World
	rng      *rand.Rand
	seed     int64
	mapName  string
	headless bool

	space    *physics.Space
	registry *controller.Registry

	// Entity mappers
	bodyMapper *ecs.Map5[
		components.Transform,
		components.Velocity,
		components.Mass,
		components.Forces,
		components.Collider,
	]
	charMapper   *ecs.Map4[components.Body, components.Spawn, controller.Character, brain.Driver]
	staticMapper *ecs.Map3[components.Transform, components.Collider, components.Body]
	playerMap    *ecs.Map[components.Player]
	bodyMap      *ecs.Map[components.Body]

	charFilter     ecs.Filter4[components.Body, controller.Character, components.Transform, components.Velocity]
	colliderFilter ecs.Filter2[components.Transform, components.Collider]

	// Systems
	spaceSys   *systems.SpaceSystem
	sensors    *systems.SensorSystem
	brains     *systems.BrainSystem
	controller *systems.ControllerSystem
	motion     *systems.MotionSystem
	physics    *systems.PhysicsSystem
	hitboxes   *systems.HitboxSystem
	sysInfo    *systems.SystemRegistry

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	lifetime      *telemetry.LifetimeTracker
	output        *telemetry.OutputManager
	events        []telemetry.Event
	samples       telemetry.BodySamples
	logStats      bool
	logEvents     bool
	statsCallback func(telemetry.WindowStats)

	// Viewer
	camera    *camera.Camera
	keyboard  *Keyboard
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry
	inspector *ui.Renderer
	motionUI  ui.PanelDescriptor
	state     ui.ControlsState
	inspected int // Index into the character query order

	player    ecs.Entity
	hasPlayer bool

	tick           int32
	nextID         uint32
	stepsPerUpdate int
}

// NewGame creates a game with the given seed and default options.
func NewGame(seed int64) *Game {
	return NewGameWithOptions(Options{Seed: seed})
}

// NewGameWithOptions creates a new game. config.Init must have been called.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		cfg:      cfg,
		world:    world,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		seed:     opts.Seed,
		mapName:  cfg.World.Map,
		headless: opts.Headless,
		space:    physics.NewSpace(),
		registry: controller.NewRegistry(),

		bodyMapper: ecs.NewMap5[
			components.Transform,
			components.Velocity,
			components.Mass,
			components.Forces,
			components.Collider,
		](world),
		charMapper:   ecs.NewMap4[components.Body, components.Spawn, controller.Character, brain.Driver](world),
		staticMapper: ecs.NewMap3[components.Transform, components.Collider, components.Body](world),
		playerMap:    ecs.NewMap[components.Player](world),
		bodyMap:      ecs.NewMap[components.Body](world),

		charFilter:     *ecs.NewFilter4[components.Body, controller.Character, components.Transform, components.Velocity](world),
		colliderFilter: *ecs.NewFilter2[components.Transform, components.Collider](world),

		sysInfo:        systems.NewSystemRegistry(),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		lifetime:       telemetry.NewLifetimeTracker(),
		logStats:       opts.LogStats,
		logEvents:      cfg.Telemetry.LogEvents,
		statsCallback:  opts.StatsCallback,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		state:          ui.ControlsState{Speed: 1},
	}
	if opts.Map != "" {
		g.mapName = opts.Map
	}

	controller.RegisterDefaults(g.registry, cfg)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)

	// Systems
	gravity := cfg.Derived.Gravity
	g.spaceSys = systems.NewSpaceSystem(world, g.space)
	g.sensors = systems.NewSensorSystem(world, g.space)
	g.brains = systems.NewBrainSystem(world, g.registry)
	g.controller = systems.NewControllerSystem(world, g.space, gravity)
	g.motion = systems.NewMotionSystem(world)
	g.physics = systems.NewPhysicsSystem(world, g.space, gravity,
		float32(cfg.Physics.MaxSpeed), cfg.Physics.Iterations, float32(cfg.Physics.KillPlane))
	g.hitboxes = systems.NewHitboxSystem(world, g.space)

	// Output
	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.output = om
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g.camera = camera.New(mgl32.Vec3{})
	if !g.headless {
		g.initViewer()
	}

	g.buildMap()
	g.spawnInitialPopulation()

	return g
}

// Tick returns the number of completed simulation ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// MapName returns the name of the map that was built.
func (g *Game) MapName() string {
	return g.mapName
}

// Bodies returns the number of spawned characters.
func (g *Game) Bodies() int {
	return int(g.nextID)
}

// UpdateHeadless runs StepsPerUpdate ticks without input or drawing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs a single fixed tick.
func (g *Game) step() {
	frame := g.cfg.Derived.Tick

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseSpace)
	g.spaceSys.Update(g.world)

	g.perf.StartPhase(telemetry.PhaseSense)
	g.sensors.Update(g.world)

	g.perf.StartPhase(telemetry.PhaseBrains)
	g.brains.Update(g.world, frame)

	g.perf.StartPhase(telemetry.PhaseController)
	g.controller.Update(g.world, frame)
	g.hitboxes.Spawn(g.controller.Spawns)

	g.perf.StartPhase(telemetry.PhaseMotion)
	g.motion.Update(g.world)

	g.perf.StartPhase(telemetry.PhasePhysics)
	g.physics.Update(g.world, g.cfg.Derived.DT32)
	// Hitboxes overlap against post-integration positions
	g.spaceSys.Update(g.world)

	g.perf.StartPhase(telemetry.PhaseHitboxes)
	g.hitboxes.Update(g.world, frame)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordTick()
	g.tick++
	g.flushTelemetry()

	g.perf.EndTick(g.Bodies())
}

// Unload releases resources and writes the final snapshot.
func (g *Game) Unload() {
	g.controller.Close()
	if g.output != nil {
		g.writeSnapshot()
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	if n, err := g.brains.Errors(); n > 0 {
		slog.Warn("brain errors during run", "count", n, "first", err)
	}
}
