package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/festive/input"
)

// Mouse turns tcell mouse reports, which carry button state rather than
// transitions, into pointer events in logical pixels.
type Mouse struct {
	down bool
	col  int
	row  int
	seen bool
}

// Translate returns the pointer events implied by ev.
func (m *Mouse) Translate(ev *tcell.EventMouse) []input.Event {
	col, row := ev.Position()
	x := (float64(col) + 0.5) * CellW
	y := (float64(row) + 0.5) * CellH
	pressed := ev.Buttons()&tcell.Button1 != 0
	moved := !m.seen || col != m.col || row != m.row
	m.col, m.row, m.seen = col, row, true

	var out []input.Event
	switch {
	case pressed && !m.down:
		m.down = true
		out = append(out, input.Pointer(input.PointerDown, x, y))
	case !pressed && m.down:
		m.down = false
		if moved {
			out = append(out, input.Pointer(input.PointerMove, x, y))
		}
		out = append(out, input.Pointer(input.PointerUp, x, y))
	case moved:
		out = append(out, input.Pointer(input.PointerMove, x, y))
	}
	return out
}

// Down reports whether the primary button is held.
func (m *Mouse) Down() bool {
	return m.down
}
