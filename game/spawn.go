package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/brain"
	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// spawnInitialPopulation creates the configured bodies.
func (g *Game) spawnInitialPopulation() {
	pop := g.cfg.Population

	if pop.Player {
		var b brain.Brain
		if g.headless {
			b = brain.ScriptFromConfig(g.cfg)
		} else {
			g.keyboard = NewKeyboard(g.camera, g.cfg)
			b = g.keyboard
		}
		g.player = g.spawnBody(mgl32.Vec3{0, float32(g.cfg.Walk.FloatingHeight) + 2, 0}, components.KindPlayer, b)
		g.playerMap.Add(g.player, &components.Player{})
		g.hasPlayer = true
	}

	for i := 0; i < pop.Wanderers; i++ {
		g.spawnBody(g.spawnPoint(), components.KindWanderer, brain.WanderingFromConfig(g.cfg, g.rng.Int63()))
	}
	for i := 0; i < pop.Jumpers; i++ {
		g.spawnBody(g.spawnPoint(), components.KindJumper, &brain.Jumper{})
	}
	for i := 0; i < pop.Chasers; i++ {
		g.spawnBody(g.spawnPoint(), components.KindChaser, brain.ChaserFromConfig(g.cfg))
	}
	for i := 0; i < pop.Scripted; i++ {
		g.spawnBody(g.spawnPoint(), components.KindScripted, brain.ScriptFromConfig(g.cfg))
	}

	slog.Info("population spawned", "map", g.mapName, "bodies", g.nextID, "statics", g.space.StaticCount(),
		"registered", g.registry.Names())
}

// spawnBody creates a character at pos driven by b.
func (g *Game) spawnBody(pos mgl32.Vec3, kind components.Kind, b brain.Brain) ecs.Entity {
	pop := g.cfg.Population

	id := g.nextID
	g.nextID++

	t := components.NewTransform(pos)
	e := g.bodyMapper.NewEntity(
		&t,
		&components.Velocity{},
		&components.Mass{Value: float32(pop.Mass)},
		&components.Forces{},
		&components.Collider{HalfExtents: pop.HalfExtents.V()},
	)
	g.charMapper.Add(e,
		&components.Body{ID: id, Kind: kind},
		&components.Spawn{Position: pos},
		&controller.Character{Sensor: controller.SensorFromConfig(g.cfg)},
		&brain.Driver{Brain: b},
	)

	g.lifetime.Register(id, g.tick)
	return e
}
