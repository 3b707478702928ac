// Package brain decides what each character wants to do. A brain never
// touches physics: it picks a walk intent and requests actions by name,
// every tick, through a Command.
package brain

import (
	"errors"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// Perception is the read-only view a brain gets of its body.
type Perception struct {
	Self      ecs.Entity
	Frame     time.Duration
	Age       time.Duration // Time since the body spawned
	Transform components.Transform
	Velocity  components.Velocity
	Airborne  bool

	// Target is the nearest player body, valid when HasTarget is set.
	Target    mgl32.Vec3
	HasTarget bool
}

// Brain produces one tick of intent.
type Brain interface {
	Think(p *Perception, cmd *Command)
}

// Driver is the ECS component attaching a brain to a character.
type Driver struct {
	Brain Brain
	Age   time.Duration
}

// Command applies a brain's decisions to one controller. Walk should come
// before Request so actions built from the intent (Dash) see its direction.
type Command struct {
	registry *controller.Registry
	ctrl     *controller.Controller
	intent   controller.Intent
	err      error
}

// NewCommand returns a command writing to c with factories from r.
func NewCommand(r *controller.Registry, c *controller.Controller) Command {
	return Command{registry: r, ctrl: c}
}

// Walk sets the walk basis with the desired planar velocity and facing.
// A zero facing leaves the body free to spin down.
func (c *Command) Walk(velocity, facing mgl32.Vec3) {
	c.intent = controller.Intent{Velocity: velocity, Facing: facing}
	b, err := c.registry.NewBasis(controller.WalkName, c.intent)
	if err != nil {
		c.err = errors.Join(c.err, err)
		return
	}
	c.ctrl.SetBasis(b)
}

// Request feeds the named action for this tick.
func (c *Command) Request(name string) {
	a, err := c.registry.NewAction(name, c.intent)
	if err != nil {
		c.err = errors.Join(c.err, err)
		return
	}
	c.ctrl.RequestAction(a)
}

// Intent returns the last walk intent.
func (c *Command) Intent() controller.Intent {
	return c.intent
}

// Err returns every error collected while applying the command.
func (c *Command) Err() error {
	return c.err
}

// planar projects v onto the XZ plane.
func planar(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}
}

// heading returns the unit XZ direction for an angle measured from -Z toward +X.
func heading(angle float32) mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(angle), 0, -math32.Cos(angle)}
}
