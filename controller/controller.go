package controller

// TickReport lists the lifecycle changes of one controller tick.
// Empty strings mean nothing happened in that slot.
type TickReport struct {
	Started  string // Action promoted to current
	Finished string // Last action that reported Finished
	Rejected string // Contender refused by its initiation decision
	Dropped  string // Contender discarded because no brain requested it

	Takeoff bool // Basis switched to airborne
	Landing bool // Basis switched to grounded
}

// Empty reports whether nothing changed.
func (r TickReport) Empty() bool {
	return r == TickReport{}
}

// Controller owns a body's basis, its current action and the one contender
// waiting to replace it. The zero value is ready to use.
//
// Brains call SetBasis and RequestAction before Tick, every tick: an action
// only persists while it keeps being requested.
type Controller struct {
	basis     Basis
	current   Action
	contender Action
	ledger    ledger
}

// SetBasis installs b. A basis with the same name as the active one only
// updates its parameters, keeping internal state. Passing nil removes the basis.
func (c *Controller) SetBasis(b Basis) {
	if b == nil {
		c.basis = nil
		return
	}
	if c.basis != nil && c.basis.Name() == b.Name() {
		c.basis.Retune(b)
		return
	}
	c.basis = b
}

// RequestAction feeds a for this tick.
//
// A request naming the current action retunes it in place, a request naming
// the contender retunes the contender, anything else replaces the contender.
func (c *Controller) RequestAction(a Action) {
	name := a.Name()
	c.ledger.feed(name)

	switch {
	case c.current != nil && c.current.Name() == name:
		c.current.Retune(a)
	case c.contender != nil && c.contender.Name() == name:
		c.contender.Retune(a)
	default:
		c.contender = a
	}
}

// Tick runs one controller step and accumulates its contributions into motion.
//
// Order: basis, contender admission, current action (or promotion when idle),
// same-tick promotion when the current action finishes, feeding purge.
func (c *Controller) Tick(ctx *TickContext, motion *Motion) TickReport {
	var r TickReport
	ctx.basis = c.basis

	if c.basis != nil {
		wasAirborne := c.basis.IsAirborne()
		c.basis.Apply(ctx, motion)
		airborne := c.basis.IsAirborne()
		r.Takeoff = airborne && !wasAirborne
		r.Landing = !airborne && wasAirborne
	}

	if c.contender != nil && c.contender.InitiationDecision(ctx) == Reject {
		r.Rejected = c.contender.Name()
		c.contender = nil
	}

	if c.current == nil {
		c.promote(ctx, motion, &r)
	} else {
		lifecycle := NoLongerFed
		if c.ledger.fedThisTick(c.current.Name()) {
			lifecycle = StillFed
		}
		if c.current.Apply(ctx, lifecycle, motion) == Finished {
			r.Finished = c.current.Name()
			c.current = nil
			c.promote(ctx, motion, &r)
		}
	}

	if c.contender != nil && !c.ledger.fedThisTick(c.contender.Name()) {
		r.Dropped = c.contender.Name()
		c.contender = nil
	}
	c.ledger.cycle()

	return r
}

// promote makes the contender current and applies it with Started.
func (c *Controller) promote(ctx *TickContext, motion *Motion, r *TickReport) {
	if c.contender == nil {
		return
	}
	a := c.contender
	c.contender = nil
	c.current = a
	r.Started = a.Name()
	if a.Apply(ctx, Started, motion) == Finished {
		r.Finished = a.Name()
		c.current = nil
	}
}

// Basis returns the active basis, or nil.
func (c *Controller) Basis() Basis { return c.basis }

// Current returns the current action, or nil.
func (c *Controller) Current() Action { return c.current }

// Contender returns the waiting contender, or nil.
func (c *Controller) Contender() Action { return c.contender }

// IsAirborne reports the basis airborne state; false without a basis.
func (c *Controller) IsAirborne() bool {
	return c.basis != nil && c.basis.IsAirborne()
}

// Requested returns the action names the feeding ledger currently tracks.
func (c *Controller) Requested() []string {
	return c.ledger.names()
}
