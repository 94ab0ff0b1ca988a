package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Slider edits one live tuning value.
type Slider struct {
	Label    string
	Min, Max float32
	Format   string
	Get      func() float64
	Set      func(float64)
}

// TuningPanel is a raygui panel of sliders bound to component setters.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	sliders  []Slider
}

// NewTuningPanel creates a hidden panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Add appends sliders. Entries without a getter or setter are skipped.
func (t *TuningPanel) Add(sliders ...Slider) {
	for _, s := range sliders {
		if s.Get == nil || s.Set == nil {
			continue
		}
		if s.Format == "" {
			s.Format = "%.3f"
		}
		t.sliders = append(t.sliders, s)
	}
}

// Len returns the number of bound sliders.
func (t *TuningPanel) Len() int {
	return len(t.sliders)
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// IsVisible returns whether the panel is shown.
func (t *TuningPanel) IsVisible() bool {
	return t.visible
}

// Contains reports whether (x, y) is over the visible panel, so pointer
// presses there can be kept from the components underneath.
func (t *TuningPanel) Contains(x, y float64) bool {
	if !t.visible {
		return false
	}
	h := t.height()
	return x >= float64(t.x) && x <= float64(t.x+t.width) && y >= float64(t.y) && y <= float64(t.y+h)
}

func (t *TuningPanel) height() int32 {
	th := t.renderer.Theme
	return th.Padding*2 + th.LineHeight + 4 + int32(len(t.sliders))*38
}

// Draw renders the panel and applies any slider changes.
func (t *TuningPanel) Draw() {
	if !t.visible || len(t.sliders) == 0 {
		return
	}
	r := t.renderer
	padding := r.Theme.Padding

	r.DrawPanel(t.x, t.y, t.width, t.height())
	y := r.DrawSectionHeader(t.x+padding, t.y+padding, "Tuning (F1)")

	sliderW := float32(t.width - padding*2 - 70)
	for _, s := range t.sliders {
		cur := float32(s.Get())
		rl.DrawText(s.Label, t.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += 16

		next := gui.SliderBar(
			rl.Rectangle{X: float32(t.x + padding), Y: float32(y), Width: sliderW, Height: 16},
			"", "",
			cur, s.Min, s.Max,
		)
		rl.DrawText(fmt.Sprintf(s.Format, s.Get()), t.x+padding+int32(sliderW)+8, y+2, r.Theme.FontSize, r.Theme.ValueColor)
		if next != cur {
			s.Set(float64(next))
		}
		y += 22
	}
}
