package systems

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// bodySnapshot captures the read-only state a controller tick needs.
type bodySnapshot struct {
	Entity    ecs.Entity
	Character *controller.Character
	Transform components.Transform
	Velocity  components.Velocity
}

// chunkOutput collects hits and hitbox requests raised by one chunk, so the
// merged result keeps query order no matter which worker ran the chunk.
type chunkOutput struct {
	hits   []controller.HitEvent
	spawns []controller.HitboxRequest
}

func (o *chunkOutput) Hit(e controller.HitEvent) { o.hits = append(o.hits, e) }

func (o *chunkOutput) SpawnHitbox(r controller.HitboxRequest) { o.spawns = append(o.spawns, r) }

// Report is a non-empty controller tick report.
type Report struct {
	Entity ecs.Entity
	controller.TickReport
}

// ControllerSystem ticks every character's controller. Controllers only touch
// their own body and read the space, so bodies are processed in parallel:
// snapshot, compute in chunks, then merge outputs single-threaded.
// Characters missing Mass or Forces cannot be flushed by the motion system and
// are skipped whole.
type ControllerSystem struct {
	filter  ecs.Filter5[controller.Character, components.Transform, components.Velocity, components.Mass, components.Forces]
	caster  controller.Caster
	gravity mgl32.Vec3

	snapshots []bodySnapshot
	reports   []controller.TickReport
	outputs   []chunkOutput
	pool      *workerPool
	frame     time.Duration

	// Results of the last Update, valid until the next one.
	Reports []Report
	Hits    []controller.HitEvent
	Spawns  []controller.HitboxRequest
}

// NewControllerSystem creates a controller system.
func NewControllerSystem(w *ecs.World, caster controller.Caster, gravity mgl32.Vec3) *ControllerSystem {
	s := &ControllerSystem{
		filter:    *ecs.NewFilter5[controller.Character, components.Transform, components.Velocity, components.Mass, components.Forces](w),
		caster:    caster,
		gravity:   gravity,
		snapshots: make([]bodySnapshot, 0, 256),
	}
	s.pool = newWorkerPool(s.computeChunk)
	s.outputs = make([]chunkOutput, s.pool.numWorkers)
	return s
}

// Update runs one controller tick for every character.
func (s *ControllerSystem) Update(w *ecs.World, frame time.Duration) {
	s.frame = frame
	s.Reports = s.Reports[:0]
	s.Hits = s.Hits[:0]
	s.Spawns = s.Spawns[:0]

	// Phase A: snapshot
	s.snapshots = s.snapshots[:0]
	query := s.filter.Query()
	for query.Next() {
		ch, t, v, _, _ := query.Get()
		s.snapshots = append(s.snapshots, bodySnapshot{
			Entity:    query.Entity(),
			Character: ch,
			Transform: *t,
			Velocity:  *v,
		})
	}

	n := len(s.snapshots)
	if n == 0 {
		return
	}
	if cap(s.reports) < n {
		s.reports = make([]controller.TickReport, n)
	}
	s.reports = s.reports[:n]

	// Phase B: compute
	chunks := 1
	if n < parallelThreshold {
		s.computeChunk(workChunk{index: 0, start: 0, end: n})
	} else {
		chunks = s.pool.run(n)
	}

	// Phase C: merge in snapshot order
	for i := range s.snapshots {
		if !s.reports[i].Empty() {
			s.Reports = append(s.Reports, Report{Entity: s.snapshots[i].Entity, TickReport: s.reports[i]})
		}
	}
	for i := 0; i < chunks; i++ {
		out := &s.outputs[i]
		s.Hits = append(s.Hits, out.hits...)
		s.Spawns = append(s.Spawns, out.spawns...)
	}
}

func (s *ControllerSystem) computeChunk(chunk workChunk) {
	out := &s.outputs[chunk.index]
	out.hits = out.hits[:0]
	out.spawns = out.spawns[:0]

	for i := chunk.start; i < chunk.end; i++ {
		snap := &s.snapshots[i]
		ch := snap.Character
		floor, found := ch.Sensor.Hit()

		ctx := controller.TickContext{
			Frame:     s.frame,
			Self:      snap.Entity,
			Transform: snap.Transform,
			Velocity:  snap.Velocity,
			Gravity:   s.gravity,
			Floor:     floor,
			HasFloor:  found,
			Caster:    s.caster,
			Hits:      out,
			Hitboxes:  out,
		}
		s.reports[i] = ch.Controller.Tick(&ctx, &ch.Motion)
		ch.Last = s.reports[i]
	}
}

// Close stops the worker goroutines.
func (s *ControllerSystem) Close() {
	s.pool.stop()
}
