package telemetry

import "github.com/pthm-cable/rogue/controller"

// LifetimeStats tracks per-body counters since spawn.
type LifetimeStats struct {
	SpawnTick int32 `json:"spawn_tick"`

	Jumps     int `json:"jumps"`
	Dashes    int `json:"dashes"`
	Attacks   int `json:"attacks"`
	Rejected  int `json:"rejected"`
	HitsDealt int `json:"hits_dealt"`
	HitsTaken int `json:"hits_taken"`
	Respawns  int `json:"respawns"`

	AirTicks int32 `json:"air_ticks"`
}

// LifetimeTracker manages per-body lifetime statistics, keyed by body ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new body.
func (lt *LifetimeTracker) Register(id uint32, spawnTick int32) {
	lt.stats[id] = &LifetimeStats{SpawnTick: spawnTick}
}

// Get returns the lifetime stats for a body, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Record updates the counters an event touches.
func (lt *LifetimeTracker) Record(e Event) {
	s := lt.stats[e.EntityID]
	switch e.Type {
	case EventActionStarted:
		if s == nil {
			return
		}
		switch e.Action {
		case controller.JumpName:
			s.Jumps++
		case controller.DashName:
			s.Dashes++
		case controller.AttackName:
			s.Attacks++
		}
	case EventActionRejected:
		if s != nil {
			s.Rejected++
		}
	case EventHit:
		if s != nil {
			s.HitsDealt++
		}
		if t := lt.stats[e.TargetID]; t != nil {
			t.HitsTaken++
		}
	case EventRespawn:
		if s != nil {
			s.Respawns++
		}
	}
}

// RecordAirborne counts one airborne tick.
func (lt *LifetimeTracker) RecordAirborne(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.AirTicks++
	}
}

// Count returns the number of tracked bodies.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
