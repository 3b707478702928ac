package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
	"github.com/pthm-cable/rogue/ui"
)

// Debug vector scales
const (
	velocityScale = 0.25
	forceScale    = 0.05
	facingLength  = 1.5
)

var kindColors = map[components.Kind]rl.Color{
	components.KindPlayer:   rl.SkyBlue,
	components.KindWanderer: rl.Lime,
	components.KindJumper:   rl.Gold,
	components.KindChaser:   rl.Maroon,
	components.KindScripted: rl.Purple,
}

// initViewer creates the UI panels. Requires an open raylib window.
func (g *Game) initViewer() {
	w := int32(g.cfg.Screen.Width)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(w-260, 10)
	g.controls = ui.NewControlsPanel(10, 100, 220)
	g.overlays = ui.NewOverlayRegistry()
	g.inspector = ui.NewRenderer()
	g.motionUI = ui.MotionPanel(float32(g.cfg.Physics.MaxSpeed))
}

// Update handles input and runs as many ticks as the speed setting asks for.
func (g *Game) Update() {
	g.handleInput()
	g.perf.RecordFrame()

	if g.state.Paused {
		if g.state.Step {
			g.step()
			g.state.Step = false
		}
	} else {
		for i := 0; i < g.state.Speed; i++ {
			g.step()
		}
	}

	if g.hasPlayer {
		t, _, _, _, _ := g.bodyMapper.Get(g.player)
		g.camera.Follow(t.Translation, rl.GetFrameTime())
	}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func (g *Game) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(g.camera.Position()),
		Target:     vec(g.camera.Target),
		Up:         vec(g.cfg.Derived.Up),
		Fovy:       50,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the scene and the debug UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 26, B: 32, A: 255})

	rl.BeginMode3D(g.camera3D())
	g.drawColliders()
	g.drawCharacters()
	rl.EndMode3D()

	g.drawUI()
	rl.EndDrawing()
}

// drawColliders draws static geometry, bodies and hitboxes.
func (g *Game) drawColliders() {
	wires := g.overlays.IsEnabled(ui.OverlayColliders)
	hitboxes := g.overlays.IsEnabled(ui.OverlayHitboxes)

	query := g.colliderFilter.Query()
	for query.Next() {
		t, c := query.Get()
		size := c.HalfExtents.Mul(2)
		pos := vec(t.Translation)

		switch {
		case c.Sensor:
			if hitboxes {
				rl.DrawCubeWires(pos, size[0], size[1], size[2], rl.Red)
			}
		case c.Fixed:
			rl.DrawCube(pos, size[0], size[1], size[2], rl.Color{R: 70, G: 76, B: 88, A: 255})
			rl.DrawCubeWires(pos, size[0], size[1], size[2], rl.Color{R: 40, G: 44, B: 52, A: 255})
		default:
			color := rl.LightGray
			if b := g.body(query.Entity()); b.Kind != components.KindStatic {
				color = kindColors[b.Kind]
			}
			rl.DrawCube(pos, size[0], size[1], size[2], color)
			if wires {
				rl.DrawCubeWires(pos, size[0], size[1], size[2], rl.White)
			}
		}
	}
}

// drawCharacters draws the per-character debug overlays.
func (g *Game) drawCharacters() {
	sensors := g.overlays.IsEnabled(ui.OverlaySensors)
	velocity := g.overlays.IsEnabled(ui.OverlayVelocity)
	motion := g.overlays.IsEnabled(ui.OverlayMotion)
	facing := g.overlays.IsEnabled(ui.OverlayFacing)

	query := g.charFilter.Query()
	for query.Next() {
		_, ch, t, v := query.Get()
		p := t.Translation

		if sensors {
			drawSensor(&ch.Sensor, p)
		}
		if velocity {
			rl.DrawLine3D(vec(p), vec(p.Add(v.Linear.Mul(velocityScale))), rl.Yellow)
		}
		if motion {
			rl.DrawLine3D(vec(p), vec(p.Add(ch.Out.Force.Mul(forceScale))), rl.Orange)
			rl.DrawLine3D(vec(p), vec(p.Add(ch.Out.LinearImpulse)), rl.Magenta)
		}
		if facing {
			fwd := t.Rotate(g.cfg.Derived.Forward)
			rl.DrawLine3D(vec(p), vec(p.Add(fwd.Mul(facingLength))), rl.White)
		}
	}
}

func drawSensor(s *controller.ProximitySensor, p mgl32.Vec3) {
	origin := p.Add(s.Origin)
	if hit, ok := s.Hit(); ok {
		end := origin.Add(s.Direction.Mul(hit.Distance))
		rl.DrawLine3D(vec(origin), vec(end), rl.Green)
		rl.DrawSphere(vec(end), 0.08, rl.Green)
		return
	}
	rl.DrawLine3D(vec(origin), vec(origin.Add(s.Direction.Mul(s.MaxDistance))), rl.Red)
}

// drawUI draws the HUD, perf, controls and motion panels.
func (g *Game) drawUI() {
	var bodies, airborne int
	var view ui.MotionView
	var found bool

	query := g.charFilter.Query()
	for query.Next() {
		b, ch, t, v := query.Get()
		if ch.Controller.IsAirborne() {
			airborne++
		}
		if bodies == g.inspected%int(max(g.nextID, 1)) {
			view = ui.NewMotionView(fmt.Sprintf("%s #%d", b.Kind, b.ID), ch, *t, *v)
			found = true
		}
		bodies++
	}

	g.hud.Draw(ui.HUDData{
		Title:    "Rogue",
		Map:      g.mapName,
		Bodies:   bodies,
		Airborne: airborne,
		Tick:     g.tick,
		Speed:    g.state.Speed,
		FPS:      rl.GetFPS(),
		Paused:   g.state.Paused,
	})

	stats := g.perf.Stats()
	g.perfPanel.Draw(ui.PerfPanelData{
		PhaseAvg: stats.PhaseAvg,
		Total:    stats.AvgTickDuration,
		Registry: g.sysInfo,
	}, g.sysInfo.IDs())

	g.controls.Draw(&g.state, g.overlays)

	if found {
		x := int32(g.cfg.Screen.Width) - g.motionUI.Width - 10
		g.inspector.DrawDescriptor(x, 200, g.motionUI, &view)
	}

	g.hud.DrawControls(int32(g.cfg.Screen.Height),
		"WASD move | Space jump | Shift dash | J attack | Q/E orbit | Enter pause | N step | Tab inspect | F1 panel")
}
