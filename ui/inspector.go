package ui

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/rogue/components"
	"github.com/pthm-cable/rogue/controller"
)

// MotionView is a copy of everything the motion inspector shows for one body.
type MotionView struct {
	Label     string
	Position  mgl32.Vec3
	Velocity  mgl32.Vec3
	Angular   mgl32.Vec3
	Out       controller.MotionOutput
	Basis     string
	Current   string
	Contender string
	Requested []string
	Airborne  bool
	Floor     float32 // Sensor distance, valid when HasFloor
	HasFloor  bool
	Last      controller.TickReport
}

// NewMotionView copies the inspector data out of a body's components.
func NewMotionView(label string, ch *controller.Character, t components.Transform, v components.Velocity) MotionView {
	view := MotionView{
		Label:     label,
		Position:  t.Translation,
		Velocity:  v.Linear,
		Angular:   v.Angular,
		Out:       ch.Out,
		Requested: ch.Controller.Requested(),
		Airborne:  ch.Controller.IsAirborne(),
		Last:      ch.Last,
	}
	if b := ch.Controller.Basis(); b != nil {
		view.Basis = b.Name()
	}
	if a := ch.Controller.Current(); a != nil {
		view.Current = a.Name()
	}
	if a := ch.Controller.Contender(); a != nil {
		view.Contender = a.Name()
	}
	if hit, ok := ch.Sensor.Hit(); ok {
		view.Floor = hit.Distance
		view.HasFloor = true
	}
	return view
}

// Events formats the last tick report for display.
func (m *MotionView) Events() string {
	var parts []string
	r := m.Last
	if r.Takeoff {
		parts = append(parts, "takeoff")
	}
	if r.Landing {
		parts = append(parts, "landing")
	}
	for _, p := range []struct{ tag, name string }{
		{"+", r.Started}, {"=", r.Finished}, {"x", r.Rejected}, {"-", r.Dropped},
	} {
		if p.name != "" {
			parts = append(parts, p.tag+p.name)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func view(data any) *MotionView {
	return data.(*MotionView)
}

func vecText(v mgl32.Vec3) string {
	return fmt.Sprintf("%+6.2f %+6.2f %+6.2f", v[0], v[1], v[2])
}

func nameOr(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func vecField(id, label string, get func(*MotionView) mgl32.Vec3) FieldDescriptor {
	return FieldDescriptor{
		ID:         id,
		Label:      label,
		Widget:     WidgetText,
		TextGetter: func(d any) string { return vecText(get(view(d))) },
	}
}

// MotionPanel describes the motion inspector layout. maxSpeed scales the
// velocity bars.
func MotionPanel(maxSpeed float32) PanelDescriptor {
	return PanelDescriptor{
		ID:    "motion",
		Title: "Motion",
		Width: 320,
		Sections: []SectionDescriptor{
			{
				ID: "body",
				Fields: []FieldDescriptor{
					{ID: "label", Label: "Body", Widget: WidgetText, TextGetter: func(d any) string { return view(d).Label }},
					vecField("pos", "Position", func(m *MotionView) mgl32.Vec3 { return m.Position }),
					vecField("vel", "Velocity", func(m *MotionView) mgl32.Vec3 { return m.Velocity }),
					vecField("angvel", "Ang vel", func(m *MotionView) mgl32.Vec3 { return m.Angular }),
					{
						ID: "vy", Label: "Vertical", Widget: WidgetCenteredBar, Range: SymmetricRange(maxSpeed / 4),
						Getter: func(d any) float32 { return view(d).Velocity.Y() },
					},
				},
			},
			{
				ID:    "request",
				Title: "Request",
				Fields: []FieldDescriptor{
					vecField("force", "Force", func(m *MotionView) mgl32.Vec3 { return m.Out.Force }),
					vecField("torque", "Torque", func(m *MotionView) mgl32.Vec3 { return m.Out.Torque }),
					vecField("boost", "Boost", func(m *MotionView) mgl32.Vec3 { return m.Out.LinearBoost }),
					vecField("angboost", "Ang boost", func(m *MotionView) mgl32.Vec3 { return m.Out.AngularBoost }),
					vecField("impulse", "Impulse", func(m *MotionView) mgl32.Vec3 { return m.Out.LinearImpulse }),
				},
			},
			{
				ID:    "controller",
				Title: "Controller",
				Fields: []FieldDescriptor{
					{ID: "basis", Label: "Basis", Widget: WidgetText, TextGetter: func(d any) string { return nameOr(view(d).Basis) }},
					{ID: "current", Label: "Current", Widget: WidgetText, TextGetter: func(d any) string { return nameOr(view(d).Current) }},
					{ID: "contender", Label: "Contender", Widget: WidgetText, TextGetter: func(d any) string { return nameOr(view(d).Contender) }},
					{ID: "requested", Label: "Requested", Widget: WidgetText, TextGetter: func(d any) string {
						if r := view(d).Requested; len(r) > 0 {
							return strings.Join(r, ",")
						}
						return "-"
					}},
					{ID: "events", Label: "Last tick", Widget: WidgetText, TextGetter: func(d any) string { return view(d).Events() }},
					{ID: "airborne", Label: "Airborne", Widget: WidgetFlag, FlagGetter: func(d any) bool { return view(d).Airborne }},
					{ID: "floor", Label: "Floor", Widget: WidgetText, Format: "%.3f",
						Visible: func(d any) bool { return view(d).HasFloor },
						Getter:  func(d any) float32 { return view(d).Floor },
					},
				},
			},
		},
	}
}
