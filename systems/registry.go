package systems

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "visual", "ai")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	// Spatial index
	r.Register(SystemInfo{ID: "space", Name: "Space", Description: "Mirrors moving colliders into the physics space", Category: "core"})

	// Character control
	r.Register(SystemInfo{ID: "sense", Name: "Sensors", Description: "Casts each character's floor probe", Category: "control"})
	r.Register(SystemInfo{ID: "brains", Name: "Brains", Description: "Chooses walk intent and requests actions", Category: "control"})
	r.Register(SystemInfo{ID: "controller", Name: "Controller", Description: "Runs basis and action arbitration", Category: "control"})
	r.Register(SystemInfo{ID: "motion", Name: "Motion", Description: "Flushes motion into forces and velocity", Category: "control"})

	// Physics
	r.Register(SystemInfo{ID: "physics", Name: "Physics", Description: "Integrates bodies and resolves static contacts", Category: "physics"})
	r.Register(SystemInfo{ID: "hitboxes", Name: "Hitboxes", Description: "Reports attack volume contacts", Category: "physics"})

	// Data collection
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Records events and window stats", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
