package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/festive/countdown"
	"github.com/pthm-cable/festive/telemetry"
)

var units = [4]string{"DAYS", "HOURS", "MINUTES", "SECONDS"}

// CountdownHUD draws the time remaining as four labelled boxes.
type CountdownHUD struct {
	renderer *Renderer
}

// NewCountdownHUD creates a countdown HUD.
func NewCountdownHUD() *CountdownHUD {
	return &CountdownHUD{renderer: NewRenderer()}
}

// Draw renders the countdown centred horizontally at y.
func (h *CountdownHUD) Draw(parts countdown.Parts, screenWidth, y int32) {
	r := h.renderer
	if parts.Complete {
		r.DrawCentered("Happy New Year!", screenWidth/2, y, 48, r.Theme.Accent)
		return
	}

	const (
		box  = 110
		gap  = 20
		size = 48
	)
	values := parts.Labels()
	total := int32(4*box + 3*gap)
	x := screenWidth/2 - total/2

	for i, v := range values {
		bx := x + int32(i)*(box+gap)
		r.DrawPanel(bx, y, box, box)
		r.DrawCentered(v, bx+box/2, y+20, size, r.Theme.ValueColor)
		r.DrawCentered(units[i], bx+box/2, y+box-24, r.Theme.FontSize+2, r.Theme.LabelColor)
	}
}

// PerfPanel renders per-component frame timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("%.0f fps  avg %s  p95 %s",
		stats.FPS, stats.Frame.Mean.Round(time.Microsecond), stats.Frame.P95.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for i, ph := range stats.Phases {
		if i >= 12 {
			break
		}
		color := rl.LightGray
		if ph.Pct > 40 {
			color = rl.Red
		} else if ph.Pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-18s %8s %5.1f%%", ph.Name, ph.Mean.Round(time.Microsecond), ph.Pct),
			x, y, 12, color,
		)
		y += 14
	}
}
