// Package surface defines the 2D raster drawing contract shared by the
// particle fields and the lifecycle rules for owning one.
package surface

import "errors"

var (
	// ErrUnavailable means the rendering capability a component needs is
	// missing (no window, no 3D backend).
	ErrUnavailable = errors.New("surface: rendering capability unavailable")

	// ErrNoTarget means the anchor a component mounts into is absent.
	ErrNoTarget = errors.New("surface: mount target missing")

	// ErrDisposed is returned when reopening a disposed lifecycle.
	ErrDisposed = errors.New("surface: already disposed")
)

// Surface is a raster drawing target sized in logical pixels.
//
// A frame is Clear, any number of Disc/Glow calls, then Present. Every call
// on a disposed surface is a no-op.
type Surface interface {
	// Size returns the logical size.
	Size() (w, h float64)
	// Clear starts a frame and wipes the previous one.
	Clear()
	// Disc fills a circle.
	Disc(x, y, r float64, c Color, alpha float64)
	// Glow blends a radial gradient additively over what is already drawn.
	Glow(x, y, r float64, stops []Stop, alpha float64)
	// Present finishes the frame.
	Present()
	// Resize changes the logical size in place.
	Resize(w, h float64)
	// Dispose releases the surface. Safe to call more than once.
	Dispose()
}

// Factory creates a surface at the given logical size.
type Factory func(w, h float64) (Surface, error)
