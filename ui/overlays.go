package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayColliders OverlayID = "colliders"
	OverlaySensors   OverlayID = "sensors"
	OverlayVelocity  OverlayID = "velocity"
	OverlayMotion    OverlayID = "motion"
	OverlayHitboxes  OverlayID = "hitboxes"
	OverlayFacing    OverlayID = "facing"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32 // 0 = no key
	KeyLabel    string
	Category    string
	Default     bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	// Physics
	r.Register(OverlayDescriptor{
		ID: OverlayColliders, Name: "Colliders", Description: "Wireframe collider boxes",
		Key: rl.KeyC, KeyLabel: "C", Category: "physics",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayHitboxes, Name: "Hitboxes", Description: "Live attack hitboxes",
		Key: rl.KeyH, KeyLabel: "H", Category: "physics", Default: true,
	})

	// Controller
	r.Register(OverlayDescriptor{
		ID: OverlaySensors, Name: "Sensors", Description: "Floor probe and its hit point",
		Key: rl.KeyP, KeyLabel: "P", Category: "controller", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayVelocity, Name: "Velocity", Description: "Linear velocity vectors",
		Key: rl.KeyV, KeyLabel: "V", Category: "controller",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayMotion, Name: "Motion", Description: "Flushed force and impulse requests",
		Key: rl.KeyM, KeyLabel: "M", Category: "controller",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayFacing, Name: "Facing", Description: "Body forward axis",
		Key: rl.KeyF, KeyLabel: "F", Category: "controller", Default: true,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
