package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/config"
	"github.com/pthm-cable/rogue/controller"
)

func TestEventsFromReport(t *testing.T) {
	body := components.Body{ID: 7, Kind: components.KindJumper}
	r := controller.TickReport{
		Started:  "Jump",
		Finished: "Dash",
		Rejected: "Attack",
		Dropped:  "Walkabout",
		Takeoff:  true,
	}

	events := EventsFromReport(nil, 12, body, r)

	want := []struct {
		typ    EventType
		action string
	}{
		{EventTakeoff, ""},
		{EventActionRejected, "Attack"},
		{EventActionFinished, "Dash"},
		{EventActionStarted, "Jump"},
		{EventActionDropped, "Walkabout"},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		e := events[i]
		if e.Type != w.typ || e.Action != w.action || e.Tick != 12 || e.EntityID != 7 {
			t.Errorf("event %d = %+v, want %v %q", i, e, w.typ, w.action)
		}
	}

	if got := EventsFromReport(nil, 1, body, controller.TickReport{}); len(got) != 0 {
		t.Errorf("empty report produced %d events", len(got))
	}
}

func TestEventRecord(t *testing.T) {
	e := Event{Type: EventActionStarted, Tick: 3, EntityID: 1, Kind: components.KindPlayer, Action: "Dash"}
	r := e.Record()
	if r.Type != "action_started" || r.Kind != "player" || r.Action != "Dash" {
		t.Errorf("unexpected record %+v", r)
	}
	if len(r.ActionID) != 16 {
		t.Errorf("action id %q should be 16 hex digits", r.ActionID)
	}

	hit := NewHitEvent(4, components.Body{ID: 2, Kind: components.KindChaser}, 9, 1).Record()
	if hit.ActionID != "" || hit.Target != 9 || hit.Amount != 1 || hit.Type != "hit" {
		t.Errorf("unexpected hit record %+v", hit)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.25, 0.125)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("ticks per window = %d, want 10", c.WindowDurationTicks())
	}

	body := components.Body{ID: 1}
	for _, e := range EventsFromReport(nil, 1, body, controller.TickReport{Started: controller.JumpName, Takeoff: true}) {
		c.Record(e)
	}
	c.Record(Event{Type: EventActionRejected, Action: controller.JumpName})
	c.Record(Event{Type: EventActionStarted, Action: controller.DashName})
	c.Record(NewHitEvent(2, body, 2, 1))
	c.Record(NewRespawnEvent(2, body))

	if c.ShouldFlush(9) {
		t.Error("flushed too early")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at window end")
	}

	stats := c.Flush(10, BodySamples{Speeds: []float64{1, 3}, RideErrors: []float64{0.1}, Airborne: 1})
	if stats.Started != 2 || stats.Jumps != 1 || stats.Dashes != 1 || stats.Rejected != 1 {
		t.Errorf("action counters wrong: %+v", stats)
	}
	if stats.Takeoffs != 1 || stats.Hits != 1 || stats.Respawns != 1 {
		t.Errorf("event counters wrong: %+v", stats)
	}
	if stats.RejectRate < 0.33 || stats.RejectRate > 0.34 {
		t.Errorf("reject rate = %v, want 1/3", stats.RejectRate)
	}
	if stats.Bodies != 2 || stats.Airborne != 1 || stats.SpeedMean != 2 {
		t.Errorf("samples wrong: %+v", stats)
	}
	if stats.SimTimeSec != 1.25 {
		t.Errorf("sim time = %v, want 1.25", stats.SimTimeSec)
	}

	next := c.Flush(20, BodySamples{})
	if next.Started != 0 || next.WindowStartTick != 10 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0)
	lt.Register(2, 5)

	src := components.Body{ID: 1}
	lt.Record(Event{Type: EventActionStarted, EntityID: 1, Action: controller.AttackName})
	lt.Record(NewHitEvent(3, src, 2, 1))
	lt.Record(NewHitEvent(3, src, 99, 1)) // untracked target
	lt.Record(Event{Type: EventActionStarted, EntityID: 42, Action: controller.JumpName})
	lt.RecordAirborne(2)

	a, b := lt.Get(1), lt.Get(2)
	if a.Attacks != 1 || a.HitsDealt != 2 {
		t.Errorf("source stats = %+v", a)
	}
	if b.HitsTaken != 1 || b.AirTicks != 1 || b.SpawnTick != 5 {
		t.Errorf("target stats = %+v", b)
	}
	if lt.Count() != 2 {
		t.Errorf("count = %d, want 2", lt.Count())
	}
}

func TestOutputManager(t *testing.T) {
	config.MustInit("")
	dir := filepath.Join(t.TempDir(), "run")

	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i)}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
		if err := om.WriteEvents([]Event{{Type: EventLanding, Tick: int32(i)}}); err != nil {
			t.Fatalf("WriteEvents: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("events.csv has %d lines, want header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,type") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}

	var disabled *OutputManager
	if err := disabled.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil manager should ignore writes: %v", err)
	}
}
