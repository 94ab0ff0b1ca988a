package particle

import (
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/surface"
)

// SnowConfig tunes a Snowfall. Speeds are pixels per frame.
type SnowConfig struct {
	Count              int
	SizeMin, SizeMax   float64
	SpeedMin, SpeedMax float64
	Wind               float64

	OpacityMin, OpacityMax         float64
	WobbleSpeedMin, WobbleSpeedMax float64
	WobbleAmplitude                float64

	// Margin is how far outside the viewport a flake may drift before it
	// respawns; respawned flakes enter at -Margin.
	Margin float64

	GlowThreshold float64
	GlowScale     float64
	GlowAlpha     float64

	// Caps applied under reduced motion
	ReducedCount    int
	ReducedMaxSpeed float64
}

// DefaultSnowConfig returns the stock snowfall.
func DefaultSnowConfig() SnowConfig {
	return SnowConfig{
		Count:           50,
		SizeMin:         2,
		SizeMax:         5,
		SpeedMin:        1,
		SpeedMax:        3,
		Wind:            0.5,
		OpacityMin:      0.4,
		OpacityMax:      0.8,
		WobbleSpeedMin:  0.01,
		WobbleSpeedMax:  0.03,
		WobbleAmplitude: 0.5,
		Margin:          10,
		GlowThreshold:   3,
		GlowScale:       2,
		GlowAlpha:       0.3,
		ReducedCount:    30,
		ReducedMaxSpeed: 1,
	}
}

// Adapt applies the reduced-motion caps. The result never has more flakes or
// a higher top speed than c.
func (c SnowConfig) Adapt(reduced bool) SnowConfig {
	if !reduced {
		return c
	}
	if c.ReducedCount >= 0 && c.ReducedCount < c.Count {
		c.Count = c.ReducedCount
	}
	c.SpeedMax = math.Min(c.SpeedMax, math.Max(c.ReducedMaxSpeed, 0))
	c.SpeedMin = math.Min(c.SpeedMin, c.SpeedMax)
	return c
}

// Flake is one snowflake.
type Flake struct {
	X, Y        float64
	Size        float64
	Speed       float64
	Opacity     float64
	Wobble      float64
	WobbleSpeed float64
}

// RespawnFlake returns a fresh flake entering just above the viewport.
func RespawnFlake(rng *rand.Rand, cfg SnowConfig, view camera.Viewport) Flake {
	return Flake{
		X:           rng.Float64() * view.W,
		Y:           -cfg.Margin,
		Size:        between(rng, cfg.SizeMin, cfg.SizeMax),
		Speed:       between(rng, cfg.SpeedMin, cfg.SpeedMax),
		Opacity:     between(rng, cfg.OpacityMin, cfg.OpacityMax),
		Wobble:      rng.Float64() * 2 * math.Pi,
		WobbleSpeed: between(rng, cfg.WobbleSpeedMin, cfg.WobbleSpeedMax),
	}
}

// Step advances a flake by one frame and reports whether it left the
// viewport (below, or past either side by more than margin).
func (fl *Flake) Step(cfg SnowConfig, view camera.Viewport) (gone bool) {
	fl.Y += fl.Speed
	fl.Wobble += fl.WobbleSpeed
	fl.X += math.Sin(fl.Wobble)*cfg.WobbleAmplitude + cfg.Wind
	return fl.Y > view.H+cfg.Margin || fl.X > view.W+cfg.Margin || fl.X < -cfg.Margin
}

// Snowfall drifts flakes down the viewport with a sideways wobble and wind.
type Snowfall struct {
	cfg    SnowConfig
	rng    *rand.Rand
	view   camera.Viewport
	flakes []Flake
}

// NewSnowfall creates a snowfall. reduced is the reduced-motion preference,
// read once.
func NewSnowfall(cfg SnowConfig, rng *rand.Rand, reduced bool) *Snowfall {
	return &Snowfall{cfg: cfg.Adapt(reduced), rng: rng}
}

// Config returns the effective (adapted) configuration.
func (f *Snowfall) Config() SnowConfig {
	return f.cfg
}

// SetWind changes the horizontal drift for every flake.
func (f *Snowfall) SetWind(w float64) {
	f.cfg.Wind = w
}

// Seed rebuilds the pool, scattering the first flakes over the whole height.
func (f *Snowfall) Seed(view camera.Viewport) {
	f.view = view
	f.flakes = make([]Flake, f.cfg.Count)
	for i := range f.flakes {
		fl := RespawnFlake(f.rng, f.cfg, view)
		fl.Y = f.rng.Float64() * view.H
		f.flakes[i] = fl
	}
}

// Len returns the pool size.
func (f *Snowfall) Len() int {
	return len(f.flakes)
}

// Flakes returns the live pool.
func (f *Snowfall) Flakes() []Flake {
	return f.flakes
}

// Update advances every flake one frame. Snow moves per frame, not per
// millisecond, so the delta is unused.
func (f *Snowfall) Update(_, _ time.Duration) {
	for i := range f.flakes {
		if f.flakes[i].Step(f.cfg, f.view) {
			f.flakes[i] = RespawnFlake(f.rng, f.cfg, f.view)
		}
	}
}

// Draw paints every flake, with a halo around the larger ones.
func (f *Snowfall) Draw(dst surface.Surface) {
	for i := range f.flakes {
		fl := &f.flakes[i]
		dst.Disc(fl.X, fl.Y, fl.Size, surface.White, fl.Opacity)
		if fl.Size > f.cfg.GlowThreshold {
			dst.Glow(fl.X, fl.Y, fl.Size*f.cfg.GlowScale, surface.FadeGlow(surface.White, 1), fl.Opacity*f.cfg.GlowAlpha)
		}
	}
}
