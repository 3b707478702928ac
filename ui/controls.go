package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel lets the user change.
type ControlsState struct {
	Paused bool
	Speed  int
	Step   bool // Set for one frame when the step button is pressed
}

// ControlsPanel renders pause/step/speed controls and overlay toggles with raygui.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	MaxSpeed int
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		MaxSpeed: 10,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel, applying button and checkbox changes to state and overlays.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) {
	state.Step = false
	if !c.visible {
		return
	}

	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight + 6

	rows := int32(4)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	r.DrawPanel(c.x, c.y, c.width, rows*line+pad*2)

	x := float32(c.x + pad)
	y := float32(c.y + pad)
	w := float32(c.width - pad*2)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += float32(line)

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w/2 - 4, Height: 20}, label) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + w/2 + 4, Y: y, Width: w/2 - 4, Height: 20}, "Step") {
		state.Paused = true
		state.Step = true
	}
	y += float32(line)

	speed := gui.SliderBar(
		rl.Rectangle{X: x + 40, Y: y, Width: w - 80, Height: 16},
		"Speed", fmt.Sprintf("%dx", state.Speed),
		float32(state.Speed), 1, float32(c.MaxSpeed),
	)
	state.Speed = int(speed + 0.5)
	y += float32(line)

	for _, cat := range overlays.Categories() {
		rl.DrawText(categoryLabel(cat), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(line)
		for _, desc := range overlays.ByCategory(cat) {
			text := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			enabled := overlays.IsEnabled(desc.ID)
			if next := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, text, enabled); next != enabled {
				overlays.SetEnabled(desc.ID, next)
			}
			y += float32(line)
		}
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "physics":
		return "Physics"
	case "controller":
		return "Controller"
	default:
		return cat
	}
}
