package brain

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/rogue/config"
	"github.com/pthm-cable/rogue/controller"
)

// Wandering walks along a heading and turns by a random angle at a fixed interval.
type Wandering struct {
	Speed     float32
	TurnAngle float32 // Maximum turn per interval, radians

	heading float32
	timer   controller.Timer
	rng     *rand.Rand
}

// NewWandering returns a wanderer starting on a random heading.
func NewWandering(speed float32, interval time.Duration, turnAngle float32, seed int64) *Wandering {
	rng := rand.New(rand.NewSource(seed))
	return &Wandering{
		Speed:     speed,
		TurnAngle: turnAngle,
		heading:   rng.Float32() * 2 * math32.Pi,
		timer:     controller.NewTimer(interval),
		rng:       rng,
	}
}

// Heading returns the current heading angle.
func (w *Wandering) Heading() float32 { return w.heading }

// Think implements Brain.
func (w *Wandering) Think(p *Perception, cmd *Command) {
	w.timer.Tick(p.Frame)
	if w.timer.Finished() {
		w.heading += (w.rng.Float32()*2 - 1) * w.TurnAngle
		w.timer.Reset()
	}
	dir := heading(w.heading)
	cmd.Walk(dir.Mul(w.Speed), dir)
}

// Jumper stands still, or walks at a fixed velocity, and asks to jump every tick.
type Jumper struct {
	Velocity mgl32.Vec3
}

// Think implements Brain.
func (j *Jumper) Think(_ *Perception, cmd *Command) {
	var facing mgl32.Vec3
	if j.Velocity.Len() > 0 {
		facing = j.Velocity.Normalize()
	}
	cmd.Walk(j.Velocity, facing)
	cmd.Request(controller.JumpName)
}

// Chaser walks toward the nearest player in range and attacks when close.
type Chaser struct {
	Speed       float32
	Range       float32
	AttackRange float32
}

// Think implements Brain.
func (c *Chaser) Think(p *Perception, cmd *Command) {
	if !p.HasTarget {
		cmd.Walk(mgl32.Vec3{}, mgl32.Vec3{})
		return
	}
	to := planar(p.Target.Sub(p.Transform.Translation))
	dist := to.Len()
	if dist > c.Range || dist < 1e-4 {
		cmd.Walk(mgl32.Vec3{}, mgl32.Vec3{})
		return
	}
	dir := to.Mul(1 / dist)
	if dist <= c.AttackRange {
		cmd.Walk(mgl32.Vec3{}, dir)
		cmd.Request(controller.AttackName)
		return
	}
	cmd.Walk(dir.Mul(c.Speed), dir)
}

// Step is one segment of a Script, active while From <= age < To.
type Step struct {
	From, To time.Duration
	Velocity mgl32.Vec3
	Facing   mgl32.Vec3
	Actions  []string
}

// Script replays a fixed timeline keyed on body age. Outside every step the
// body stands still.
type Script struct {
	Steps []Step
}

// Think implements Brain.
func (s *Script) Think(p *Perception, cmd *Command) {
	for i := range s.Steps {
		st := &s.Steps[i]
		if p.Age < st.From || p.Age >= st.To {
			continue
		}
		cmd.Walk(st.Velocity, st.Facing)
		for _, name := range st.Actions {
			cmd.Request(name)
		}
		return
	}
	cmd.Walk(mgl32.Vec3{}, mgl32.Vec3{})
}

// Done reports whether age is past the last step.
func (s *Script) Done(age time.Duration) bool {
	for _, st := range s.Steps {
		if age < st.To {
			return false
		}
	}
	return true
}

// ScriptFromConfig builds a script from the configured timeline.
func ScriptFromConfig(cfg *config.Config) *Script {
	steps := make([]Step, len(cfg.Brains.Script))
	for i, st := range cfg.Brains.Script {
		steps[i] = Step{
			From:     config.Seconds(st.From),
			To:       config.Seconds(st.To),
			Velocity: st.Velocity.V(),
			Facing:   st.Facing.V(),
			Actions:  append([]string(nil), st.Actions...),
		}
	}
	return &Script{Steps: steps}
}

// WanderingFromConfig returns a wanderer with configured speed and turning.
func WanderingFromConfig(cfg *config.Config, seed int64) *Wandering {
	b := cfg.Brains
	return NewWandering(float32(b.WanderSpeed), config.Seconds(b.WanderTurnInterval), float32(b.WanderTurnAngle), seed)
}

// ChaserFromConfig returns a chaser with configured speed and ranges.
func ChaserFromConfig(cfg *config.Config) *Chaser {
	b := cfg.Brains
	return &Chaser{
		Speed:       float32(b.ChaseSpeed),
		Range:       float32(b.ChaseRange),
		AttackRange: float32(b.ChaseAttackRange),
	}
}
