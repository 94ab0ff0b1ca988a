package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/festive/input"
)

// pointerState remembers last frame's pointer so polling can be turned into
// down/move/up events.
type pointerState struct {
	x, y    float64
	down    bool
	touches int
	// A press that landed on the tuning panel belongs to the panel
	captured bool
}

// handleInput processes keyboard input and publishes pointer, touch and
// resize events to the bus.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
		if g.paused {
			g.page.Pause()
		} else {
			g.page.Resume()
		}
	}

	if n := int(rl.GetTouchPointCount()); (n > 0 || g.pointer.touches > 0) && !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.pollTouch(n)
	} else {
		g.pollMouse()
	}
	g.updateCursor()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if !g.view.Resize(w, h) {
		return
	}
	g.placeSprite()
	g.bus.Publish(input.Resized(w, h))
}

func (g *Game) pollMouse() {
	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.pointer.down = true
		g.pointer.captured = g.tuning.Contains(x, y)
		if !g.pointer.captured {
			g.bus.Publish(input.Pointer(input.PointerDown, x, y))
		}
	}

	if x != g.pointer.x || y != g.pointer.y {
		g.pointer.x, g.pointer.y = x, y
		if !g.pointer.captured {
			g.bus.Publish(input.Pointer(input.PointerMove, x, y))
		}
	}

	if g.pointer.down && !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.pointer.down = false
		if !g.pointer.captured {
			g.bus.Publish(input.Pointer(input.PointerUp, x, y))
		}
		g.pointer.captured = false
	}
}

func (g *Game) pollTouch(n int) {
	points := make([]input.Point, 0, n)
	for i := 0; i < n; i++ {
		p := rl.GetTouchPosition(int32(i))
		points = append(points, input.Point{X: float64(p.X), Y: float64(p.Y)})
	}

	switch {
	case g.pointer.touches == 0 && n > 0:
		g.bus.Publish(input.Touch(input.TouchStart, points...))
	case n == 0:
		g.bus.Publish(input.Touch(input.TouchEnd))
	case n != g.pointer.touches:
		// Finger added or lifted mid-gesture
		g.bus.Publish(input.Touch(input.TouchStart, points...))
	default:
		if points[0].X != g.pointer.x || points[0].Y != g.pointer.y {
			g.bus.Publish(input.Touch(input.TouchMove, points...))
		}
	}

	g.pointer.touches = n
	if n > 0 {
		g.pointer.x, g.pointer.y = points[0].X, points[0].Y
	}
}

// updateCursor shows a grab affordance while something is being dragged and
// a pointing hand over anything that can be.
func (g *Game) updateCursor() {
	switch {
	case g.grabbing:
		rl.SetMouseCursor(rl.MouseCursorResizeAll)
	case g.page.Draggable(g.pointer.x, g.pointer.y):
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	default:
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}
