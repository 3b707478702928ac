// Package ui provides a descriptor-driven debug UI for the viewer.
// Panels are declared as field metadata over a view struct, so the layout
// can change without touching the drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetCenteredBar                   // Centered bar over a symmetric range
	WidgetFlag                          // On/off indicator
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// SymmetricRange returns a [-m, +m] range.
func SymmetricRange(m float32) FieldRange {
	return FieldRange{Min: -m, Max: m}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string
	Label      string
	Widget     WidgetType
	Format     string // Printf format for numeric text
	Range      FieldRange
	Visible    func(any) bool    // nil = always visible
	Getter     func(any) float32 // Numeric fields
	TextGetter func(any) string  // Text fields
	FlagGetter func(any) bool    // Flag fields
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32
}

// Lines returns the number of rows the panel occupies for data.
func (p PanelDescriptor) Lines(data any) int {
	n := 0
	if p.Title != "" {
		n++
	}
	for _, sd := range p.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			n++
		}
		for _, fd := range sd.Fields {
			if fd.Visible == nil || fd.Visible(data) {
				n++
			}
		}
	}
	return n
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	FlagOn          rl.Color
	FlagOff         rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		FlagOn:          rl.Color{R: 100, G: 200, B: 100, A: 255},
		FlagOff:         rl.Color{R: 80, G: 80, B: 80, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
