package controller

// Initiation is an action's answer to a request to become current.
type Initiation uint8

const (
	Allow Initiation = iota
	Reject
)

// String returns the initiation name.
func (i Initiation) String() string {
	if i == Allow {
		return "allow"
	}
	return "reject"
}

// Lifecycle tells an action how it is being applied this tick.
type Lifecycle uint8

const (
	// Started is passed on the first apply after promotion.
	Started Lifecycle = iota
	// StillFed means a brain requested the action again this tick.
	StillFed
	// NoLongerFed means no brain requested it this tick; the action should wind down.
	NoLongerFed
)

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	switch l {
	case Started:
		return "started"
	case StillFed:
		return "still_fed"
	case NoLongerFed:
		return "no_longer_fed"
	default:
		return "unknown"
	}
}

// Directive is what an action reports after being applied.
type Directive uint8

const (
	Active Directive = iota
	Finished
)

// String returns the directive name.
func (d Directive) String() string {
	if d == Active {
		return "active"
	}
	return "finished"
}

// Action is a transient, brain-initiated movement such as a jump or an attack.
// Each value carries its own input parameters and internal state machine.
type Action interface {
	// Name identifies the action kind. Two values with the same name must have the same type.
	Name() string
	// InitiationDecision is asked every tick the action waits as contender.
	InitiationDecision(ctx *TickContext) Initiation
	// Apply adds this tick's contribution to motion and reports whether the action is done.
	Apply(ctx *TickContext, lifecycle Lifecycle, motion *Motion) Directive
	// Retune copies the input parameters of next into the receiver, keeping internal state.
	Retune(next Action)
}

// FinishWhenUnfed is the directive for actions that only last while requested.
func FinishWhenUnfed(l Lifecycle) Directive {
	if l == NoLongerFed {
		return Finished
	}
	return Active
}
