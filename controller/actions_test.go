package controller

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// airborneWalk returns a Walk that has been without floor contact past its grace window.
func airborneWalk(t *testing.T) *Walk {
	t.Helper()
	w := NewWalk(testWalkParams())
	var m Motion
	for i := 0; i < 10; i++ {
		w.Apply(inAir(), &m)
	}
	require.True(t, w.IsAirborne())
	return w
}

func TestJumpAdmission(t *testing.T) {
	j := NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow)

	ctx := grounded(2)
	ctx.basis = NewWalk(testWalkParams())
	assert.Equal(t, Allow, j.InitiationDecision(ctx))

	ctx = inAir()
	ctx.basis = airborneWalk(t)
	assert.Equal(t, Reject, j.InitiationDecision(ctx))
}

func TestJumpLifecycle(t *testing.T) {
	walk := NewWalk(testWalkParams())
	j := NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow)
	var m Motion

	ctx := grounded(2)
	ctx.basis = walk
	walk.Apply(ctx, &m)
	m.Reset()
	require.Equal(t, Active, j.Apply(ctx, Started, &m))
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, m.Linear.Impulse)

	// Still on the floor: spring pulls down against the takeoff and is cancelled.
	ctx = grounded(2)
	ctx.basis = walk
	ctx.Velocity.Linear = mgl32.Vec3{0, 5, 0}
	m.Reset()
	walk.Apply(ctx, &m)
	require.Less(t, walk.SpringForce(), float32(0))
	require.Equal(t, Active, j.Apply(ctx, StillFed, &m))
	assert.InDelta(t, 0, m.Linear.Boost.Y(), 1e-6)

	// Leaves the floor; active until the basis agrees it is airborne.
	for i := 0; i < 10; i++ {
		ctx = inAir()
		ctx.basis = walk
		walk.Apply(ctx, &m)
		require.Equal(t, Active, j.Apply(ctx, NoLongerFed, &m))
	}
	require.True(t, walk.IsAirborne())

	ctx = inAir()
	ctx.basis = walk
	walk.Apply(ctx, &m)
	require.Equal(t, Active, j.Apply(ctx, NoLongerFed, &m), "feeding does not end a jump")

	ctx = grounded(2)
	ctx.basis = walk
	walk.Apply(ctx, &m)
	assert.Equal(t, Finished, j.Apply(ctx, NoLongerFed, &m), "landing ends the jump")
}

func TestJumpGivesUpWhenStuckOnFloor(t *testing.T) {
	walk := NewWalk(testWalkParams())
	j := NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow)
	var m Motion

	finishedAt := 0
	for i := 1; i <= 120; i++ {
		ctx := grounded(2)
		ctx.basis = walk
		m.Reset()
		walk.Apply(ctx, &m)
		lc := StillFed
		if i == 1 {
			lc = Started
		}
		if j.Apply(ctx, lc, &m) == Finished {
			finishedAt = i
			break
		}
	}

	require.NotZero(t, finishedAt, "jump pinned to the floor must still finish")
	// One takeoff tick, then 46 ticks of 16.67 ms to cover 0.75 s.
	assert.Equal(t, 47, finishedAt)
}

func TestJumpTakeoffWindowIgnoredOnceAirborne(t *testing.T) {
	walk := NewWalk(testWalkParams())
	// Longer than the 150 ms grace window the basis needs to report airborne.
	j := NewJump(mgl32.Vec3{0, 5, 0}, 300*time.Millisecond)
	var m Motion

	ctx := grounded(2)
	ctx.basis = walk
	walk.Apply(ctx, &m)
	require.Equal(t, Active, j.Apply(ctx, Started, &m))

	// A long fall: the window only bounds the time spent on the floor.
	for i := 0; i < 120; i++ {
		ctx = inAir()
		ctx.basis = walk
		walk.Apply(ctx, &m)
		require.Equal(t, Active, j.Apply(ctx, NoLongerFed, &m), "tick %d", i)
	}
	require.True(t, walk.IsAirborne())
}

func TestDashLifecycle(t *testing.T) {
	d := NewDash(mgl32.Vec3{0, 0, -2}, 10, 300*time.Millisecond, DashAlways)
	var m Motion

	require.Equal(t, Active, d.Apply(grounded(2), Started, &m))
	assert.Equal(t, mgl32.Vec3{0, 0, -10}, m.Linear.Impulse)

	ticks := 1
	for {
		m.Reset()
		ticks++
		if d.Apply(grounded(2), StillFed, &m) == Finished {
			break
		}
		require.Less(t, ticks, 100)
	}
	assert.Equal(t, 20, ticks)
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, m.Linear.Boost, "brakes with the opposite of the burst")
}

func TestDashStopsWhenUnfed(t *testing.T) {
	d := NewDash(mgl32.Vec3{1, 0, 0}, 10, 300*time.Millisecond, DashAlways)
	var m Motion
	d.Apply(grounded(2), Started, &m)
	m.Reset()

	assert.Equal(t, Finished, d.Apply(grounded(2), NoLongerFed, &m))
	assert.Equal(t, mgl32.Vec3{-10, 0, 0}, m.Linear.Boost)
}

func TestDashAdmission(t *testing.T) {
	tests := []struct {
		name      string
		admission DashAdmission
		airborne  bool
		want      Initiation
	}{
		{"always on ground", DashAlways, false, Allow},
		{"always in air", DashAlways, true, Allow},
		{"airborne only on ground", DashAirborneOnly, false, Reject},
		{"airborne only in air", DashAirborneOnly, true, Allow},
		{"grounded only on ground", DashGroundedOnly, false, Allow},
		{"grounded only in air", DashGroundedOnly, true, Reject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := grounded(2)
			ctx.basis = NewWalk(testWalkParams())
			if tt.airborne {
				ctx = inAir()
				ctx.basis = airborneWalk(t)
			}
			d := NewDash(mgl32.Vec3{1, 0, 0}, 10, time.Second, tt.admission)
			assert.Equal(t, tt.want, d.InitiationDecision(ctx))
		})
	}
}

func TestParsePolicies(t *testing.T) {
	a, err := ParseDashAdmission("grounded")
	require.NoError(t, err)
	assert.Equal(t, DashGroundedOnly, a)
	_, err = ParseDashAdmission("sometimes")
	assert.Error(t, err)

	mode, err := ParseAttackMode("hitbox")
	require.NoError(t, err)
	assert.Equal(t, AttackHitbox, mode)
	_, err = ParseAttackMode("kick")
	assert.Error(t, err)
}

func testAttack(mode AttackMode) *Attack {
	return &Attack{
		Mode:              mode,
		WindUp:            300 * time.Millisecond,
		Backswing:         300 * time.Millisecond,
		Range:             3,
		Power:             7,
		Forward:           forward,
		Up:                up,
		HitboxHalfExtents: mgl32.Vec3{0.2, 0.2, 0.8},
		HitboxForward:     2,
		HitboxUp:          1,
		HitboxLifetime:    100 * time.Millisecond,
	}
}

func TestAttackTiming(t *testing.T) {
	a := testAttack(AttackRay)
	caster := &fakeCaster{}
	var hits hitLog
	ctx := grounded(2)
	ctx.Caster = caster
	ctx.Hits = &hits

	var m Motion
	require.Equal(t, Active, a.Apply(ctx, Started, &m))

	finishedAt := 0
	for i := 2; i <= 60; i++ {
		if a.Apply(ctx, StillFed, &m) == Finished {
			finishedAt = i
			break
		}
	}
	assert.GreaterOrEqual(t, finishedAt, 36, "0.6 s of swing cannot end earlier")
	assert.Equal(t, 39, finishedAt)
	assert.Equal(t, 1, caster.rays, "exactly one hit test per swing")
	assert.True(t, m.Linear.IsZero() && m.Angular.IsZero(), "attacks do not move the body")
}

func TestAttackRayHit(t *testing.T) {
	ents := newEntities(2)
	self, target := ents[0], ents[1]

	a := testAttack(AttackRay)
	caster := &fakeCaster{out: SensorOutput{Entity: target, Distance: 1.5}, found: true}
	var hits hitLog
	ctx := grounded(2)
	ctx.Self = self
	ctx.Caster = caster
	ctx.Hits = &hits

	var m Motion
	a.Apply(ctx, Started, &m)
	for i := 0; i < 19; i++ {
		a.Apply(ctx, NoLongerFed, &m)
	}

	require.Len(t, hits, 1)
	assert.Equal(t, HitEvent{Source: self, Target: target, Attack: 7, Distance: 1.5}, hits[0])
	assert.Equal(t, self, caster.filter.Exclude)
	assert.InDelta(t, -1, caster.dir.Z(), 1e-6, "casts along the body's forward")
}

func TestAttackHitboxRequest(t *testing.T) {
	ents := newEntities(1)
	a := testAttack(AttackHitbox)
	var boxes hitboxLog
	ctx := grounded(2)
	ctx.Self = ents[0]
	ctx.Hitboxes = &boxes

	var m Motion
	a.Apply(ctx, Started, &m)
	for i := 0; i < 19; i++ {
		a.Apply(ctx, StillFed, &m)
	}

	require.Len(t, boxes, 1)
	req := boxes[0]
	assert.Equal(t, ents[0], req.Source)
	assert.InDelta(t, -2, req.Center.Z(), 1e-6)
	assert.InDelta(t, 3, req.Center.Y(), 1e-6, "one unit above the body at height 2")
	assert.Equal(t, 100*time.Millisecond, req.Lifetime)
}
