package telemetry

import (
	"log/slog"
	"slices"
	"time"
)

// Phase identifies one stage of the fixed tick.
type Phase uint8

// Tick phases in execution order.
const (
	PhaseSpace Phase = iota
	PhaseSense
	PhaseBrains
	PhaseController
	PhaseMotion
	PhasePhysics
	PhaseHitboxes
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"space", "sense", "brains", "controller", "motion", "physics", "hitboxes", "telemetry",
}

// String returns the phase ID used by the system registry and CSV columns.
func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists every phase ID in tick order.
var Phases = phaseNames[:]

// tickSample is one tick's timing.
type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	bodies int
}

// PerfCollector keeps a rolling window of tick timings.
type PerfCollector struct {
	samples []tickSample
	next    int
	count   int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]tickSample, windowSize)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.current = tickSample{}
	p.tickStart = time.Now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick records the tick along with the number of bodies it simulated.
func (p *PerfCollector) EndTick(bodies int) {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)
	p.current.bodies = bodies

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.count = min(p.count+1, len(p.samples))
}

// RecordFrame measures the time since the previous rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Keyed by phase ID
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64
	AvgBodies      float64
	// Average controller phase time divided by body count
	ControllerPerBody time.Duration

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	var bodies int
	ticks := make([]float64, 0, p.count)
	for _, smp := range p.samples[:p.count] {
		total += smp.total
		s.MaxTickDuration = max(s.MaxTickDuration, smp.total)
		for i, d := range smp.phases {
			phaseSum[i] += d
		}
		bodies += smp.bodies
		ticks = append(ticks, float64(smp.total))
	}
	slices.Sort(ticks)

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	s.P95TickDuration = time.Duration(Percentile(ticks, 0.95))
	s.AvgBodies = float64(bodies) / float64(p.count)
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}

	for i, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		name := phaseNames[i]
		s.PhaseAvg[name] = sum / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(s.PhaseAvg[name]) / float64(s.AvgTickDuration) * 100
		}
	}
	if bodies > 0 {
		s.ControllerPerBody = phaseSum[PhaseController] / time.Duration(bodies)
	}
	return s
}

// LogStats logs the window through slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
		slog.Int64("controller_per_body_ns", s.ControllerPerBody.Nanoseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd           int32   `csv:"window_end"`
	AvgTickUS           int64   `csv:"avg_tick_us"`
	P95TickUS           int64   `csv:"p95_tick_us"`
	MaxTickUS           int64   `csv:"max_tick_us"`
	TicksPerSec         float64 `csv:"ticks_per_sec"`
	FPS                 float64 `csv:"fps"`
	Bodies              float64 `csv:"bodies"`
	ControllerPerBodyNS int64   `csv:"controller_per_body_ns"`
	SpacePct            float64 `csv:"space_pct"`
	SensePct            float64 `csv:"sense_pct"`
	BrainsPct           float64 `csv:"brains_pct"`
	ControllerPct       float64 `csv:"controller_pct"`
	MotionPct           float64 `csv:"motion_pct"`
	PhysicsPct          float64 `csv:"physics_pct"`
	HitboxesPct         float64 `csv:"hitboxes_pct"`
	TelemetryPct        float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	pct := func(p Phase) float64 { return s.PhasePct[p.String()] }
	return PerfStatsCSV{
		WindowEnd:           windowEnd,
		AvgTickUS:           s.AvgTickDuration.Microseconds(),
		P95TickUS:           s.P95TickDuration.Microseconds(),
		MaxTickUS:           s.MaxTickDuration.Microseconds(),
		TicksPerSec:         s.TicksPerSecond,
		FPS:                 s.FPS,
		Bodies:              s.AvgBodies,
		ControllerPerBodyNS: s.ControllerPerBody.Nanoseconds(),
		SpacePct:            pct(PhaseSpace),
		SensePct:            pct(PhaseSense),
		BrainsPct:           pct(PhaseBrains),
		ControllerPct:       pct(PhaseController),
		MotionPct:           pct(PhaseMotion),
		PhysicsPct:          pct(PhasePhysics),
		HitboxesPct:         pct(PhaseHitboxes),
		TelemetryPct:        pct(PhaseTelemetry),
	}
}
