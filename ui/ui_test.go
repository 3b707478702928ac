package ui

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

func TestOverlayRegistry(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlaySensors) {
		t.Error("sensors overlay should default on")
	}
	if reg.IsEnabled(OverlayColliders) {
		t.Error("colliders overlay should default off")
	}

	id, on, ok := reg.HandleKeyPress(reg.byID[OverlayColliders].Key)
	if !ok || id != OverlayColliders || !on {
		t.Errorf("HandleKeyPress = (%q, %v, %v), want (colliders, true, true)", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(-1); ok {
		t.Error("unbound key should not toggle")
	}

	if got := reg.Categories(); len(got) != 2 || got[0] != "physics" || got[1] != "controller" {
		t.Errorf("Categories() = %v", got)
	}

	total := 0
	for _, cat := range reg.Categories() {
		total += len(reg.ByCategory(cat))
	}
	if total != len(reg.All()) {
		t.Errorf("categories cover %d overlays, want %d", total, len(reg.All()))
	}
}

func TestMotionViewFromCharacter(t *testing.T) {
	ch := &controller.Character{}
	ch.Controller.SetBasis(controller.NewWalk(controller.WalkParams{Up: mgl32.Vec3{0, 1, 0}}))
	ch.Out.Force = mgl32.Vec3{0, 9.81, 0}
	ch.Last = controller.TickReport{Started: "Jump", Takeoff: true}
	ch.Sensor.Output = controller.SensorOutput{Distance: 1.5}
	ch.Sensor.Found = true

	v := NewMotionView("player", ch,
		components.NewTransform(mgl32.Vec3{1, 2, 3}),
		components.Velocity{Linear: mgl32.Vec3{0, 5, 0}})

	if v.Basis != controller.WalkName {
		t.Errorf("Basis = %q, want %q", v.Basis, controller.WalkName)
	}
	if v.Current != "" || v.Contender != "" {
		t.Errorf("expected no actions, got %q / %q", v.Current, v.Contender)
	}
	if !v.HasFloor || v.Floor != 1.5 {
		t.Errorf("floor = (%v, %v), want (1.5, true)", v.Floor, v.HasFloor)
	}
	if v.Out.Force.Y() != 9.81 {
		t.Errorf("Out not copied: %v", v.Out)
	}
	if got := v.Events(); got != "takeoff +Jump" {
		t.Errorf("Events() = %q", got)
	}
}

func TestMotionPanelFields(t *testing.T) {
	v := &MotionView{Label: "player", Velocity: mgl32.Vec3{1, -2, 3}}
	panel := MotionPanel(60)

	grounded := panel.Lines(v)
	v.HasFloor = true
	if got := panel.Lines(v); got != grounded+1 {
		t.Errorf("floor row should appear with a sensor hit: %d -> %d", grounded, got)
	}

	found := map[string]FieldDescriptor{}
	for _, sd := range panel.Sections {
		for _, fd := range sd.Fields {
			if _, dup := found[fd.ID]; dup {
				t.Errorf("duplicate field id %q", fd.ID)
			}
			found[fd.ID] = fd
		}
	}

	if got := found["vel"].TextGetter(v); !strings.Contains(got, "-2.00") {
		t.Errorf("velocity text = %q", got)
	}
	if got := found["vy"].Getter(v); got != -2 {
		t.Errorf("vertical bar = %v, want -2", got)
	}
	if got := found["current"].TextGetter(v); got != "-" {
		t.Errorf("empty current should render as '-', got %q", got)
	}
	if found["airborne"].FlagGetter(v) {
		t.Error("airborne flag should be off")
	}
}
