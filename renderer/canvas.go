package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/festive/anim"
	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/surface"
)

// glowSteps is the number of rings drawn per gradient segment.
const glowSteps = 6

// Canvas is a raster surface backed by a render texture at device
// resolution. Components draw into it between Clear and Present; the host
// composites it onto the window with Draw.
type Canvas struct {
	target rl.RenderTexture2D
	view   camera.Viewport

	inFrame  bool
	disposed bool
}

// NewCanvas creates a canvas of logical size w x h. A window must exist.
func NewCanvas(w, h, dpr float64) (*Canvas, error) {
	if !rl.IsWindowReady() {
		return nil, surface.ErrUnavailable
	}
	c := &Canvas{view: camera.NewViewport(w, h, dpr)}
	c.load()
	return c, nil
}

// CanvasFactory returns a surface.Factory producing canvases and reporting
// each through sink so the host can composite it.
func CanvasFactory(dpr float64, sink func(*Canvas)) surface.Factory {
	return func(w, h float64) (surface.Surface, error) {
		c, err := NewCanvas(w, h, dpr)
		if err != nil {
			return nil, err
		}
		if sink != nil {
			sink(c)
		}
		return c, nil
	}
}

func (c *Canvas) load() {
	pw, ph := c.view.Physical()
	c.target = rl.LoadRenderTexture(int32(pw), int32(ph))
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
}

// Size returns the logical size.
func (c *Canvas) Size() (float64, float64) { return c.view.W, c.view.H }

// Clear begins drawing into the texture and wipes it to transparent.
func (c *Canvas) Clear() {
	if c.disposed || c.inFrame {
		return
	}
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Blank)
	c.inFrame = true
}

// Disc fills a circle in logical pixels, scaled by the device pixel ratio.
func (c *Canvas) Disc(x, y, r float64, col surface.Color, alpha float64) {
	if !c.inFrame {
		return
	}
	d := c.view.DPR
	rl.DrawCircleV(rl.Vector2{X: float32(x * d), Y: float32(y * d)}, float32(r*d), rgba(col, alpha))
}

// Glow approximates a radial gradient with concentric rings, blended
// additively.
func (c *Canvas) Glow(x, y, r float64, stops []surface.Stop, alpha float64) {
	if !c.inFrame || len(stops) < 2 || r <= 0 {
		return
	}
	d := c.view.DPR
	center := rl.Vector2{X: float32(x * d), Y: float32(y * d)}
	radius := r * d

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < len(stops)-1; i++ {
		a, b := stops[i], stops[i+1]
		for s := 0; s < glowSteps; s++ {
			t0 := float64(s) / glowSteps
			t1 := float64(s+1) / glowSteps
			mid := (t0 + t1) / 2

			inner := radius * anim.Lerp(a.Offset, b.Offset, t0)
			outer := radius * anim.Lerp(a.Offset, b.Offset, t1)
			if outer <= inner {
				continue
			}
			col := a.Color.Blend(b.Color, mid)
			al := anim.Lerp(a.Alpha, b.Alpha, mid) * alpha
			rl.DrawRing(center, float32(inner), float32(outer), 0, 360, 36, rgba(col, al))
		}
	}
	rl.EndBlendMode()
}

// Present finishes drawing into the texture.
func (c *Canvas) Present() {
	if !c.inFrame {
		return
	}
	rl.EndTextureMode()
	c.inFrame = false
}

// Resize reallocates the texture at the new size. The contents are lost;
// the next frame redraws them.
func (c *Canvas) Resize(w, h float64) {
	if c.disposed {
		return
	}
	c.Present()
	if !c.view.Resize(w, h) {
		return
	}
	rl.UnloadRenderTexture(c.target)
	c.load()
}

// Dispose frees the texture.
func (c *Canvas) Dispose() {
	if c.disposed {
		return
	}
	c.Present()
	rl.UnloadRenderTexture(c.target)
	c.disposed = true
}

// Draw composites the canvas onto the current target, offset by (dx, dy)
// logical pixels.
func (c *Canvas) Draw(dx, dy float64) {
	if c.disposed {
		return
	}
	tex := c.target.Texture
	// Render textures are stored upside down
	src := rl.Rectangle{Width: float32(tex.Width), Height: -float32(tex.Height)}
	dst := rl.Rectangle{X: float32(dx), Y: float32(dy), Width: float32(c.view.W), Height: float32(c.view.H)}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Disposed reports whether Dispose ran.
func (c *Canvas) Disposed() bool {
	return c.disposed
}

func rgba(c surface.Color, alpha float64) rl.Color {
	a := math.Round(anim.Clamp(alpha, 0, 1) * 255)
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}
