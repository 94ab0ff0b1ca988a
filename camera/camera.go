// Package camera provides the viewport and projection math shared by the
// particle fields and the 3D globe.
package camera

import "math"

// CullMargin is how far (logical pixels) a projected point may sit outside
// the viewport before it is skipped.
const CullMargin = 10

// Viewport is the visible drawing area in logical pixels.
type Viewport struct {
	W, H float64

	// DPR is the device pixel ratio (physical pixels per logical pixel)
	DPR float64
}

// NewViewport creates a viewport. A non-positive dpr is treated as 1.
func NewViewport(w, h, dpr float64) Viewport {
	if dpr <= 0 {
		dpr = 1
	}
	return Viewport{W: w, H: h, DPR: dpr}
}

// Valid reports whether the viewport has a drawable area.
func (v Viewport) Valid() bool {
	return v.W > 0 && v.H > 0
}

// Center returns the viewport centre.
func (v Viewport) Center() (cx, cy float64) {
	return v.W / 2, v.H / 2
}

// Physical returns the backing-store size in device pixels.
func (v Viewport) Physical() (pw, ph int) {
	return int(math.Round(v.W * v.DPR)), int(math.Round(v.H * v.DPR))
}

// Normalize maps a viewport position to roughly [-1, 1] on each axis,
// relative to the centre.
func (v Viewport) Normalize(x, y float64) (nx, ny float64) {
	cx, cy := v.Center()
	if cx == 0 || cy == 0 {
		return 0, 0
	}
	return (x - cx) / cx, (y - cy) / cy
}

// Visible reports whether (x, y) lies inside the viewport grown by margin.
func (v Viewport) Visible(x, y, margin float64) bool {
	return x >= -margin && x <= v.W+margin && y >= -margin && y <= v.H+margin
}

// Resize updates the logical size. It reports whether anything changed.
func (v *Viewport) Resize(w, h float64) bool {
	if w == v.W && h == v.H {
		return false
	}
	v.W = w
	v.H = h
	return true
}

// Perspective describes a fixed field-of-view camera whose aspect ratio
// follows the viewport.
type Perspective struct {
	// FovY is the vertical field of view in degrees
	FovY float64

	Aspect    float64
	Near, Far float64

	// Distance from the origin along +Z
	Z float64
}

// NewPerspective creates a camera at distance z looking at the origin.
func NewPerspective(fovY, w, h, near, far, z float64) *Perspective {
	p := &Perspective{FovY: fovY, Near: near, Far: far, Z: z}
	p.Resize(w, h)
	return p
}

// Resize recomputes the aspect ratio. A degenerate size keeps the old value.
func (p *Perspective) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		if p.Aspect == 0 {
			p.Aspect = 1
		}
		return
	}
	p.Aspect = w / h
}

// VisibleHeight returns the world-space height visible at distance d.
func (p *Perspective) VisibleHeight(d float64) float64 {
	return 2 * d * math.Tan(p.FovY*math.Pi/360)
}

// ProjectDepth maps a point at depth z (distance from the viewer) onto the
// viewport with a simple pinhole model: scale = W / z, origin at the centre.
// z must be positive.
func ProjectDepth(v Viewport, x, y, z float64) (sx, sy, scale float64) {
	scale = v.W / z
	cx, cy := v.Center()
	return x*scale + cx, y*scale + cy, scale
}
