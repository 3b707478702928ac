// Package components defines ECS components for the simulation.
package components

import (
	"time"

	"github.com/mlange-42/ark/ecs"
)

// Kind identifies what spawned a body, for rendering and telemetry.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindWanderer
	KindJumper
	KindChaser
	KindScripted
	KindStatic
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindWanderer:
		return "wanderer"
	case KindJumper:
		return "jumper"
	case KindChaser:
		return "chaser"
	case KindScripted:
		return "scripted"
	case KindStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Body bundles identity for character bodies.
type Body struct {
	ID   uint32
	Kind Kind
}

// Player tags the body driven by keyboard input.
type Player struct{}

// Hitbox is a short-lived attack volume detached from its source body.
// Each target is reported at most once per hitbox.
type Hitbox struct {
	Source ecs.Entity
	Power  int32
	Hit    []ecs.Entity
}

// AlreadyHit reports whether e was reported by this hitbox before.
func (h *Hitbox) AlreadyHit(e ecs.Entity) bool {
	for _, other := range h.Hit {
		if other == e {
			return true
		}
	}
	return false
}

// Lifespan removes an entity once Remaining drops to zero.
type Lifespan struct {
	Remaining time.Duration
}
