package particle

import (
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/parallax"
	"github.com/pthm-cable/festive/surface"
)

// StarConfig tunes a Starfield.
type StarConfig struct {
	Count int
	// Speed is depth units per millisecond, times 0.1
	Speed float64

	SizeMin, SizeMax       float64
	OpacityMin, OpacityMax float64
	TwinkleMin, TwinkleMax float64 // radians per millisecond
	Palette                []surface.Color

	// Parallax is the screen offset per pointer pixel per unit of depth
	Parallax  float64
	Smoothing float64
	SizeScale float64

	GlowThreshold float64
	GlowScale     float64
	GlowAlpha     float64

	// ReducedSpeed replaces Speed under reduced motion
	ReducedSpeed float64
}

// DefaultStarConfig returns the stock starfield.
func DefaultStarConfig() StarConfig {
	return StarConfig{
		Count:         500,
		Speed:         0.3,
		SizeMin:       1,
		SizeMax:       4,
		OpacityMin:    0.7,
		OpacityMax:    1,
		TwinkleMin:    0.01,
		TwinkleMax:    0.03,
		Palette:       []surface.Color{surface.White},
		Parallax:      0.02,
		Smoothing:     parallax.DefaultSmoothing,
		SizeScale:     0.8,
		GlowThreshold: 0.8,
		GlowScale:     2.5,
		GlowAlpha:     0.5,
	}
}

// Adapt applies the reduced-motion downgrade. Depth motion stops (or slows)
// while twinkling continues.
func (c StarConfig) Adapt(reduced bool) StarConfig {
	if reduced {
		c.Speed = math.Min(c.Speed, math.Max(c.ReducedSpeed, 0))
	}
	return c
}

// Star is one depth-projected point. X and Y are in the plane at depth Z,
// spread over twice the viewport around the centre.
type Star struct {
	X, Y, Z float64
	Size    float64
	Color   surface.Color

	Opacity      float64
	TwinkleSpeed float64
	TwinklePhase float64

	// Current is Opacity modulated by the twinkle, recomputed every update
	Current float64
}

// RespawnStar returns a fresh star at the far plane (Z = viewport width).
func RespawnStar(rng *rand.Rand, cfg StarConfig, view camera.Viewport) Star {
	s := Star{
		X:            (rng.Float64() - 0.5) * view.W * 2,
		Y:            (rng.Float64() - 0.5) * view.H * 2,
		Z:            view.W,
		Size:         between(rng, cfg.SizeMin, cfg.SizeMax),
		Color:        surface.White,
		Opacity:      between(rng, cfg.OpacityMin, cfg.OpacityMax),
		TwinkleSpeed: between(rng, cfg.TwinkleMin, cfg.TwinkleMax),
		TwinklePhase: rng.Float64() * 2 * math.Pi,
	}
	if n := len(cfg.Palette); n > 0 {
		s.Color = cfg.Palette[rng.Intn(n)]
	}
	s.Current = s.Opacity
	return s
}

// seedDepth scatters an initial star through (0, W] so the field starts full.
func seedDepth(rng *rand.Rand, w float64) float64 {
	return w * (1 - rng.Float64())
}

// Twinkle returns the opacity at elapsed milliseconds t.
func (s Star) Twinkle(t float64) float64 {
	return s.Opacity * (0.8 + 0.2*math.Sin(t*s.TwinkleSpeed+s.TwinklePhase))
}

// Starfield flies stars toward the viewer and projects them onto the surface
// with a pointer parallax that grows with depth.
type Starfield struct {
	cfg   StarConfig
	rng   *rand.Rand
	view  camera.Viewport
	stars []Star

	// Pointer offset from the centre in pixels, eased every update
	mouse *parallax.Tracker
}

// NewStarfield creates a starfield. reduced is the reduced-motion preference,
// read once.
func NewStarfield(cfg StarConfig, rng *rand.Rand, reduced bool) *Starfield {
	return &Starfield{
		cfg:   cfg.Adapt(reduced),
		rng:   rng,
		mouse: parallax.NewTracker(cfg.Smoothing, camera.Viewport{}),
	}
}

// Config returns the effective (adapted) configuration.
func (f *Starfield) Config() StarConfig {
	return f.cfg
}

// SetSpeed changes the depth speed of every star.
func (f *Starfield) SetSpeed(v float64) {
	f.cfg.Speed = math.Max(v, 0)
}

// Seed rebuilds the pool at the viewport size.
func (f *Starfield) Seed(view camera.Viewport) {
	f.view = view
	f.mouse.SetViewport(view)
	f.stars = make([]Star, f.cfg.Count)
	for i := range f.stars {
		s := RespawnStar(f.rng, f.cfg, view)
		s.Z = seedDepth(f.rng, view.W)
		f.stars[i] = s
	}
}

// Len returns the pool size.
func (f *Starfield) Len() int {
	return len(f.stars)
}

// Stars returns the live pool.
func (f *Starfield) Stars() []Star {
	return f.stars
}

// HandleEvent follows pointer moves for the parallax term.
func (f *Starfield) HandleEvent(ev input.Event) {
	if ev.Kind == input.PointerMove || (ev.Kind == input.TouchMove && ev.SingleTouch()) {
		f.mouse.Point(ev.Pos.X, ev.Pos.Y)
	}
}

// Update moves every star by dt and recomputes the twinkle at now.
func (f *Starfield) Update(dt, now time.Duration) {
	f.mouse.Step()

	ms := float64(dt) / float64(time.Millisecond)
	t := float64(now) / float64(time.Millisecond)
	step := f.cfg.Speed * ms * 0.1

	for i := range f.stars {
		s := &f.stars[i]
		s.Z -= step
		if s.Z <= 0 {
			*s = RespawnStar(f.rng, f.cfg, f.view)
		}
		s.Current = s.Twinkle(t)
	}
}

// Draw projects and paints every visible star. The parallax offset is part
// of the projected position, so it takes part in culling.
func (f *Starfield) Draw(dst surface.Surface) {
	mx, my := f.mouse.Pixels()
	k := f.cfg.Parallax

	for i := range f.stars {
		s := &f.stars[i]
		x, y, scale := camera.ProjectDepth(f.view, s.X, s.Y, s.Z)
		x += mx * k * s.Z
		y += my * k * s.Z

		if !f.view.Visible(x, y, camera.CullMargin) {
			continue
		}

		size := s.Size * scale * f.cfg.SizeScale
		dst.Disc(x, y, math.Max(size, 1), s.Color, s.Current)
		if size > f.cfg.GlowThreshold {
			dst.Glow(x, y, size*f.cfg.GlowScale, surface.SoftGlow(s.Color), s.Current*f.cfg.GlowAlpha)
		}
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
