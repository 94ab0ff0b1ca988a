// Package parallax smooths the pointer position and fans it out to layers
// that move at different strengths.
package parallax

import (
	"github.com/pthm-cable/festive/anim"
	"github.com/pthm-cable/festive/camera"
)

// DefaultSmoothing moves the smoothed value 5% of the remaining distance per
// frame, a time constant of roughly 20 frames.
const DefaultSmoothing = 0.05

// Tracker is the lagged pointer position, normalized to about [-1, 1]
// relative to the viewport centre.
type Tracker struct {
	smoothing float64
	view      camera.Viewport

	curX, curY float64
	tgtX, tgtY float64
}

// NewTracker creates a tracker at the centre. smoothing outside (0, 1] falls
// back to DefaultSmoothing.
func NewTracker(smoothing float64, view camera.Viewport) *Tracker {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = DefaultSmoothing
	}
	return &Tracker{smoothing: smoothing, view: view}
}

// SetViewport changes the normalisation reference. The current target is kept.
func (t *Tracker) SetViewport(view camera.Viewport) {
	t.view = view
}

// Viewport returns the normalisation reference.
func (t *Tracker) Viewport() camera.Viewport {
	return t.view
}

// Point sets the target from a pointer position in viewport pixels.
func (t *Tracker) Point(x, y float64) {
	t.tgtX, t.tgtY = t.view.Normalize(x, y)
}

// SetTarget sets the normalized target directly.
func (t *Tracker) SetTarget(nx, ny float64) {
	t.tgtX, t.tgtY = nx, ny
}

// Step moves current toward target by the smoothing fraction on each axis.
func (t *Tracker) Step() {
	t.curX = anim.Lerp(t.curX, t.tgtX, t.smoothing)
	t.curY = anim.Lerp(t.curY, t.tgtY, t.smoothing)
}

// Current returns the smoothed normalized position.
func (t *Tracker) Current() (x, y float64) {
	return t.curX, t.curY
}

// Target returns the normalized target.
func (t *Tracker) Target() (x, y float64) {
	return t.tgtX, t.tgtY
}

// Pixels returns the smoothed position as a pixel offset from the centre.
func (t *Tracker) Pixels() (px, py float64) {
	cx, cy := t.view.Center()
	return t.curX * cx, t.curY * cy
}

// Smoothing returns the per-frame fraction.
func (t *Tracker) Smoothing() float64 {
	return t.smoothing
}

// SetSmoothing changes the per-frame fraction; invalid values are ignored.
func (t *Tracker) SetSmoothing(f float64) {
	if f > 0 && f <= 1 {
		t.smoothing = f
	}
}
