package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysActive(Lifecycle) Directive { return Active }

func TestControllerIdleRequestStartsSameTick(t *testing.T) {
	var c Controller
	a := &scriptedAction{name: "A"}
	c.RequestAction(a)

	var m Motion
	r := c.Tick(grounded(2), &m)

	assert.Equal(t, "A", r.Started)
	assert.Equal(t, []Lifecycle{Started}, a.applied)
	assert.Same(t, a, c.Current())
	assert.Nil(t, c.Contender())
}

func TestControllerRejectedContenderIsDiscarded(t *testing.T) {
	var c Controller
	cur := &scriptedAction{name: "A", directive: alwaysActive}
	c.RequestAction(cur)
	var m Motion
	c.Tick(grounded(2), &m)

	rejected := &scriptedAction{name: "B", initiation: Reject}
	c.RequestAction(cur)
	c.RequestAction(rejected)
	r := c.Tick(grounded(2), &m)

	assert.Equal(t, "B", r.Rejected)
	assert.Nil(t, c.Contender())
	assert.Same(t, cur, c.Current())
	assert.Empty(t, rejected.applied)
}

func TestControllerSameTickPromotion(t *testing.T) {
	var c Controller
	ticks := 0
	cur := &scriptedAction{name: "A", directive: func(Lifecycle) Directive {
		ticks++
		if ticks == 3 {
			return Finished
		}
		return Active
	}}
	next := &scriptedAction{name: "B", directive: alwaysActive}
	var m Motion

	c.RequestAction(cur)
	c.Tick(grounded(2), &m)

	c.RequestAction(cur)
	c.RequestAction(next)
	r := c.Tick(grounded(2), &m)
	require.Empty(t, r.Started)
	require.Same(t, next, c.Contender(), "contender waits while the current action is active")

	c.RequestAction(cur)
	c.RequestAction(next)
	r = c.Tick(grounded(2), &m)

	assert.Equal(t, "A", r.Finished)
	assert.Equal(t, "B", r.Started, "promotion happens on the tick the current action finishes")
	assert.Equal(t, []Lifecycle{Started}, next.applied)
	assert.Same(t, next, c.Current())
}

func TestControllerUnfedCleanup(t *testing.T) {
	var c Controller
	a := &scriptedAction{name: "A"}
	var m Motion

	c.RequestAction(a)
	c.Tick(grounded(2), &m) // T-1: started
	c.RequestAction(a)
	c.Tick(grounded(2), &m) // T: still fed
	require.Same(t, a, c.Current())

	r := c.Tick(grounded(2), &m) // T+1: not requested
	assert.Equal(t, "A", r.Finished)
	assert.Nil(t, c.Current())

	c.Tick(grounded(2), &m) // T+2
	assert.Nil(t, c.Current())
	assert.Equal(t, []Lifecycle{Started, StillFed, NoLongerFed}, a.applied, "exactly one NoLongerFed apply")
	assert.Empty(t, c.Requested(), "ledger forgets unfed names")
}

func TestControllerSameNameRetunesCurrent(t *testing.T) {
	var c Controller
	a := &scriptedAction{name: "A"}
	var m Motion

	c.RequestAction(a)
	c.Tick(grounded(2), &m)

	again := &scriptedAction{name: "A"}
	c.RequestAction(again)
	c.Tick(grounded(2), &m)

	assert.Same(t, a, c.Current(), "no restart")
	assert.Equal(t, 1, a.retunes)
	assert.Equal(t, []Lifecycle{Started, StillFed}, a.applied)
	assert.Empty(t, again.applied)
}

func TestControllerLastContenderWins(t *testing.T) {
	var c Controller
	cur := &scriptedAction{name: "A", directive: alwaysActive}
	var m Motion
	c.RequestAction(cur)
	c.Tick(grounded(2), &m)

	b := &scriptedAction{name: "B"}
	d := &scriptedAction{name: "D"}
	c.RequestAction(cur)
	c.RequestAction(b)
	c.RequestAction(d)
	c.Tick(grounded(2), &m)

	assert.Same(t, d, c.Contender())
	assert.Same(t, cur, c.Current())
}

func TestControllerUnfedContenderIsDropped(t *testing.T) {
	var c Controller
	cur := &scriptedAction{name: "A", directive: alwaysActive}
	b := &scriptedAction{name: "B"}
	var m Motion

	c.RequestAction(cur)
	c.Tick(grounded(2), &m)
	c.RequestAction(cur)
	c.RequestAction(b)
	c.Tick(grounded(2), &m)
	require.Same(t, b, c.Contender())

	c.RequestAction(cur)
	r := c.Tick(grounded(2), &m)

	assert.Equal(t, "B", r.Dropped)
	assert.Nil(t, c.Contender())
	assert.Empty(t, b.applied)
}

func TestControllerCurrentAndContenderNeverShareName(t *testing.T) {
	var c Controller
	cur := &scriptedAction{name: "A", directive: alwaysActive}
	var m Motion
	c.RequestAction(cur)
	c.Tick(grounded(2), &m)

	c.RequestAction(&scriptedAction{name: "A"})
	assert.Nil(t, c.Contender())
}

func TestControllerRestingWalk(t *testing.T) {
	var c Controller
	c.SetBasis(NewWalk(testWalkParams()))

	var m Motion
	r := c.Tick(grounded(2), &m)

	assert.True(t, r.Empty())
	assert.Equal(t, MotionOutput{}, m.Flush(1))
	assert.Nil(t, c.Current())
	assert.Nil(t, c.Contender())
}

func TestControllerSetBasisRetunesByName(t *testing.T) {
	var c Controller
	first := NewWalk(testWalkParams())
	c.SetBasis(first)

	var m Motion
	for i := 0; i < 10; i++ {
		c.Tick(inAir(), &m)
	}
	require.True(t, c.IsAirborne())

	p := testWalkParams()
	p.Velocity = mgl32.Vec3{3, 0, 0}
	c.SetBasis(NewWalk(p))

	assert.Same(t, first, c.Basis())
	assert.True(t, c.IsAirborne(), "internal state survives a retune")
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, first.Velocity)

	c.SetBasis(nil)
	assert.Nil(t, c.Basis())
	assert.False(t, c.IsAirborne())
}

func TestControllerReportsTakeoffAndLanding(t *testing.T) {
	var c Controller
	c.SetBasis(NewWalk(testWalkParams()))
	var m Motion

	var takeoffs, landings int
	for i := 0; i < 12; i++ {
		r := c.Tick(inAir(), &m)
		if r.Takeoff {
			takeoffs++
		}
	}
	r := c.Tick(grounded(2), &m)
	if r.Landing {
		landings++
	}

	assert.Equal(t, 1, takeoffs)
	assert.Equal(t, 1, landings)
}

func TestControllerWithoutBasisRunsActions(t *testing.T) {
	var c Controller
	c.RequestAction(NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow))

	var m Motion
	r := c.Tick(grounded(2), &m)

	assert.Equal(t, JumpName, r.Started)
	assert.Equal(t, mgl32.Vec3{0, 5, 0}, m.Linear.Impulse)

	c.RequestAction(NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow))
	r = c.Tick(inAir(), &m)
	assert.Empty(t, r.Rejected)
}

func TestControllerJumpOutlivesFeeding(t *testing.T) {
	var c Controller
	c.SetBasis(NewWalk(testWalkParams()))
	var m Motion

	c.RequestAction(NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow))
	r := c.Tick(grounded(2), &m)
	require.Equal(t, JumpName, r.Started)

	// The brain stops requesting the jump right after takeoff.
	for i := 0; i < 30; i++ {
		r = c.Tick(inAir(), &m)
		require.Empty(t, r.Finished, "tick %d", i)
		require.NotNil(t, c.Current())
	}

	r = c.Tick(grounded(2), &m)
	assert.Equal(t, JumpName, r.Finished, "jump ends on landing")
	assert.Nil(t, c.Current())
}

func TestControllerStuckJumpReleasesContender(t *testing.T) {
	var c Controller
	c.SetBasis(NewWalk(testWalkParams()))
	var m Motion

	c.RequestAction(NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow))
	r := c.Tick(grounded(2), &m)
	require.Equal(t, JumpName, r.Started)

	attack := &scriptedAction{name: "Attack", directive: alwaysActive}
	promoted := false
	for i := 0; i < 600 && !promoted; i++ {
		c.RequestAction(attack)
		m.Reset()
		r = c.Tick(grounded(2), &m)
		promoted = r.Started == "Attack"
	}

	require.True(t, promoted, "contender waited behind a jump that never left the floor")
	assert.Same(t, attack, c.Current())
}

func TestControllerJumpRejectedInAir(t *testing.T) {
	var c Controller
	c.SetBasis(NewWalk(testWalkParams()))
	var m Motion
	for i := 0; i < 10; i++ {
		c.Tick(inAir(), &m)
	}

	c.RequestAction(NewJump(mgl32.Vec3{0, 5, 0}, takeoffWindow))
	r := c.Tick(inAir(), &m)

	assert.Equal(t, JumpName, r.Rejected)
	assert.Nil(t, c.Current())
}
