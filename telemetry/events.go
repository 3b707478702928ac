// Package telemetry provides controller event tracking, window stats, snapshots and CSV output.
package telemetry

import (
	"fmt"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventActionStarted EventType = iota
	EventActionFinished
	EventActionRejected
	EventActionDropped
	EventTakeoff
	EventLanding
	EventHit
	EventRespawn
)

// String returns the snake_case event name used in CSV output.
func (t EventType) String() string {
	switch t {
	case EventActionStarted:
		return "action_started"
	case EventActionFinished:
		return "action_finished"
	case EventActionRejected:
		return "action_rejected"
	case EventActionDropped:
		return "action_dropped"
	case EventTakeoff:
		return "takeoff"
	case EventLanding:
		return "landing"
	case EventHit:
		return "hit"
	case EventRespawn:
		return "respawn"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32
	Kind     components.Kind

	// Optional fields depending on event type
	Action   string // for action events
	TargetID uint32 // for hit events
	Amount   int32  // attack power for hit events
}

// EventsFromReport appends one event per lifecycle change in r to dst.
// Order follows the controller: basis transitions, rejection, finish, start, drop.
func EventsFromReport(dst []Event, tick int32, body components.Body, r controller.TickReport) []Event {
	base := Event{Tick: tick, EntityID: body.ID, Kind: body.Kind}
	add := func(t EventType, action string) {
		e := base
		e.Type = t
		e.Action = action
		dst = append(dst, e)
	}
	if r.Takeoff {
		add(EventTakeoff, "")
	}
	if r.Landing {
		add(EventLanding, "")
	}
	if r.Rejected != "" {
		add(EventActionRejected, r.Rejected)
	}
	if r.Finished != "" {
		add(EventActionFinished, r.Finished)
	}
	if r.Started != "" {
		add(EventActionStarted, r.Started)
	}
	if r.Dropped != "" {
		add(EventActionDropped, r.Dropped)
	}
	return dst
}

// NewHitEvent creates an attack hit event.
func NewHitEvent(tick int32, source components.Body, targetID uint32, power int32) Event {
	return Event{
		Type:     EventHit,
		Tick:     tick,
		EntityID: source.ID,
		Kind:     source.Kind,
		TargetID: targetID,
		Amount:   power,
	}
}

// NewRespawnEvent creates an event for a body that fell out of the world.
func NewRespawnEvent(tick int32, body components.Body) Event {
	return Event{Type: EventRespawn, Tick: tick, EntityID: body.ID, Kind: body.Kind}
}

// EventRecord is the flat CSV form of an Event.
type EventRecord struct {
	Tick     int32  `csv:"tick"`
	Type     string `csv:"type"`
	Entity   uint32 `csv:"entity"`
	Kind     string `csv:"kind"`
	Action   string `csv:"action"`
	ActionID string `csv:"action_id"`
	Target   uint32 `csv:"target"`
	Amount   int32  `csv:"amount"`
}

// Record converts the event to its CSV form. ActionID is the registry hash of the action name.
func (e Event) Record() EventRecord {
	r := EventRecord{
		Tick:   e.Tick,
		Type:   e.Type.String(),
		Entity: e.EntityID,
		Kind:   e.Kind.String(),
		Action: e.Action,
		Target: e.TargetID,
		Amount: e.Amount,
	}
	if e.Action != "" {
		r.ActionID = fmt.Sprintf("%016x", controller.ID(e.Action))
	}
	return r
}
