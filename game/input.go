package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/rogue/brain"
	"github.com/pthm-cable/rogue/camera"
	"github.com/pthm-cable/rogue/config"
	"github.com/pthm-cable/rogue/controller"
)

// Camera input
const (
	orbitKeySpeed   = 2.0   // rad/s
	orbitMouseSpeed = 0.005 // rad/pixel
	zoomStep        = 1.1
)

// Keyboard drives the player body from WASD relative to the camera.
// Space jumps, Shift dashes, J attacks; Ctrl sprints.
type Keyboard struct {
	cam    *camera.Camera
	speed  float32
	sprint float32
}

// NewKeyboard creates the player brain.
func NewKeyboard(cam *camera.Camera, cfg *config.Config) *Keyboard {
	return &Keyboard{
		cam:    cam,
		speed:  float32(cfg.Walk.Speed),
		sprint: float32(cfg.Walk.SprintSpeed),
	}
}

// Think implements brain.Brain.
func (k *Keyboard) Think(_ *brain.Perception, cmd *brain.Command) {
	var x, y float32
	if rl.IsKeyDown(rl.KeyW) {
		y++
	}
	if rl.IsKeyDown(rl.KeyS) {
		y--
	}
	if rl.IsKeyDown(rl.KeyD) {
		x++
	}
	if rl.IsKeyDown(rl.KeyA) {
		x--
	}

	var velocity, facing mgl32.Vec3
	if dir := k.cam.Relative(x, y); dir.Len() > 0 {
		speed := k.speed
		if rl.IsKeyDown(rl.KeyLeftControl) {
			speed = k.sprint
		}
		facing = dir.Normalize()
		velocity = facing.Mul(speed)
	}
	cmd.Walk(velocity, facing)

	if rl.IsKeyDown(rl.KeySpace) {
		cmd.Request(controller.JumpName)
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		cmd.Request(controller.DashName)
	}
	if rl.IsKeyDown(rl.KeyJ) {
		cmd.Request(controller.AttackName)
	}
}

// handleInput processes viewer keys and camera controls.
func (g *Game) handleInput() {
	dt := rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyEnter) {
		g.state.Paused = !g.state.Paused
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.state.Paused = true
		g.state.Step = true
	}
	if rl.IsKeyPressed(rl.KeyEqual) && g.state.Speed < g.controls.MaxSpeed {
		g.state.Speed++
	}
	if rl.IsKeyPressed(rl.KeyMinus) && g.state.Speed > 1 {
		g.state.Speed--
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.inspected++
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.camera.Reset()
	}
	if key := rl.GetKeyPressed(); key != 0 {
		g.overlays.HandleKeyPress(key)
	}

	// Camera orbit
	if rl.IsKeyDown(rl.KeyQ) {
		g.camera.Orbit(-orbitKeySpeed*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyE) {
		g.camera.Orbit(orbitKeySpeed*dt, 0)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Orbit(d.X*orbitMouseSpeed, d.Y*orbitMouseSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		g.camera.ZoomBy(zoomStep)
	} else if wheel < 0 {
		g.camera.ZoomBy(1 / zoomStep)
	}
}
