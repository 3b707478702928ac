package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
	"github.com/pthm-cable/rogue/systems"
	"github.com/pthm-cable/rogue/telemetry"
)

// body returns the identity of e, or a static placeholder for entities without one.
func (g *Game) body(e ecs.Entity) components.Body {
	if g.bodyMap.Has(e) {
		return *g.bodyMap.Get(e)
	}
	return components.Body{Kind: components.KindStatic}
}

// recordTick turns this tick's controller reports, hits and respawns into events.
func (g *Game) recordTick() {
	g.events = g.events[:0]

	for _, r := range g.controller.Reports {
		g.events = telemetry.EventsFromReport(g.events, g.tick, g.body(r.Entity), r.TickReport)
	}
	g.recordHits(g.controller.Hits)
	g.recordHits(g.hitboxes.Hits)
	for _, e := range g.physics.Respawns {
		g.events = append(g.events, telemetry.NewRespawnEvent(g.tick, g.body(e)))
	}

	for _, e := range g.events {
		g.collector.Record(e)
		g.lifetime.Record(e)
		if g.logEvents {
			slog.Debug("event", "tick", e.Tick, "type", e.Type.String(), "entity", e.EntityID,
				"action", e.Action, "target", e.TargetID)
		}
	}
	if err := g.output.WriteEvents(g.events); err != nil {
		slog.Error("failed to write events", "error", err)
	}

	query := g.charFilter.Query()
	for query.Next() {
		b, ch, _, _ := query.Get()
		if ch.Controller.IsAirborne() {
			g.lifetime.RecordAirborne(b.ID)
		}
	}
}

func (g *Game) recordHits(hits []controller.HitEvent) {
	for _, h := range hits {
		target := g.body(h.Target)
		g.events = append(g.events, telemetry.NewHitEvent(g.tick, g.body(h.Source), target.ID, h.Attack))
	}
}

// flushTelemetry closes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.sampleBodies()
	stats := g.collector.Flush(g.tick, g.samples)
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sampleBodies collects per-body speed and ride height samples.
func (g *Game) sampleBodies() {
	g.samples.Reset()
	height := float32(g.cfg.Walk.FloatingHeight)

	query := g.charFilter.Query()
	for query.Next() {
		_, ch, _, v := query.Get()
		g.samples.Speeds = append(g.samples.Speeds, float64(systems.PlanarSpeed(v.Linear)))
		if ch.Controller.IsAirborne() {
			g.samples.Airborne++
			continue
		}
		if floor, ok := ch.Sensor.Hit(); ok {
			g.samples.RideErrors = append(g.samples.RideErrors, float64(systems.RideError(floor.Distance, height)))
		}
	}
}

// snapshot captures every character's state.
func (g *Game) snapshot() *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Seed:    g.seed,
		Map:     g.mapName,
		Tick:    g.tick,
	}

	query := g.charFilter.Query()
	for query.Next() {
		b, ch, t, v := query.Get()
		q := t.Rotation
		st := telemetry.BodyState{
			ID:        b.ID,
			Kind:      b.Kind,
			Position:  t.Translation,
			Rotation:  [4]float32{q.W, q.V[0], q.V[1], q.V[2]},
			Velocity:  v.Linear,
			Angular:   v.Angular,
			Airborne:  ch.Controller.IsAirborne(),
			Requested: ch.Controller.Requested(),
			Lifetime:  g.lifetime.Get(b.ID),
		}
		if basis := ch.Controller.Basis(); basis != nil {
			st.Basis = basis.Name()
		}
		if a := ch.Controller.Current(); a != nil {
			st.Current = a.Name()
		}
		if a := ch.Controller.Contender(); a != nil {
			st.Contender = a.Name()
		}
		s.Bodies = append(s.Bodies, st)
	}
	return s
}

// writeSnapshot saves the current state to the output directory.
func (g *Game) writeSnapshot() {
	path, err := g.output.WriteSnapshot(g.snapshot())
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}
