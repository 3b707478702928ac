package telemetry

import "github.com/pthm-cable/rogue/controller"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	started  int
	finished int
	rejected int
	dropped  int
	takeoffs int
	landings int
	hits     int
	respawns int

	jumps   int
	dashes  int
	attacks int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts one event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventActionStarted:
		c.started++
		switch e.Action {
		case controller.JumpName:
			c.jumps++
		case controller.DashName:
			c.dashes++
		case controller.AttackName:
			c.attacks++
		}
	case EventActionFinished:
		c.finished++
	case EventActionRejected:
		c.rejected++
	case EventActionDropped:
		c.dropped++
	case EventTakeoff:
		c.takeoffs++
	case EventLanding:
		c.landings++
	case EventHit:
		c.hits++
	case EventRespawn:
		c.respawns++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// BodySamples holds per-body values sampled at window end.
type BodySamples struct {
	Speeds     []float64 // Planar speed
	RideErrors []float64 // Relative floating height error of grounded bodies
	Airborne   int
}

// Reset empties the samples, keeping capacity.
func (b *BodySamples) Reset() {
	b.Speeds = b.Speeds[:0]
	b.RideErrors = b.RideErrors[:0]
	b.Airborne = 0
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, samples BodySamples) WindowStats {
	var rejectRate float64
	if requests := c.started + c.rejected; requests > 0 {
		rejectRate = float64(c.rejected) / float64(requests)
	}

	speed := ComputeDistribution(samples.Speeds)
	ride := ComputeDistribution(samples.RideErrors)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Bodies:   len(samples.Speeds),
		Airborne: samples.Airborne,

		Started:    c.started,
		Finished:   c.finished,
		Rejected:   c.rejected,
		Dropped:    c.dropped,
		RejectRate: rejectRate,
		Jumps:      c.jumps,
		Dashes:     c.dashes,
		Attacks:    c.attacks,
		Takeoffs:   c.takeoffs,
		Landings:   c.landings,
		Hits:       c.hits,
		Respawns:   c.respawns,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,

		RideErrMean: ride.Mean,
		RideErrP90:  ride.P90,
	}

	// Reset for next window
	*c = Collector{
		windowDurationSec:   c.windowDurationSec,
		windowDurationTicks: c.windowDurationTicks,
		dt:                  c.dt,
		windowStartTick:     currentTick,
	}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
