package renderer

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/festive/surface"
)

// Sprite is the flat earth image, drawn centred and rotated about its centre.
type Sprite struct {
	tex      rl.Texture2D
	radius   float64
	cx, cy   float64
	degrees  float64
	unloaded bool
}

// NewSprite loads path, or paints a procedural earth when path is empty or
// unreadable. radius is the on-screen radius in logical pixels.
func NewSprite(path string, radius float64, ocean, land surface.Color) (*Sprite, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("earth image: %w", surface.ErrUnavailable)
	}
	s := &Sprite{radius: radius}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			s.tex = rl.LoadTexture(path)
		}
		if s.tex.ID == 0 {
			slog.Warn("could not load earth image, using fallback", "path", path)
		}
	}
	if s.tex.ID == 0 {
		img := flatEarthImage(int(math.Ceil(radius*2)), ocean, land)
		s.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}
	rl.SetTextureFilter(s.tex, rl.FilterBilinear)
	return s, nil
}

// flatEarthImage paints an ocean disc with a few land masses.
func flatEarthImage(size int, ocean, land surface.Color) *rl.Image {
	if size < 8 {
		size = 8
	}
	img := rl.GenImageColor(size, size, rl.Blank)
	r := float64(size) / 2
	rl.ImageDrawCircle(img, int32(r), int32(r), int32(r), rgba(ocean, 1))
	for _, b := range []struct{ x, y, r float64 }{
		{-0.35, -0.25, 0.28}, {-0.15, -0.35, 0.2},
		{0.3, 0.1, 0.3}, {0.45, -0.1, 0.18},
		{-0.2, 0.45, 0.16},
	} {
		rl.ImageDrawCircle(img, int32(r+b.x*r), int32(r+b.y*r), int32(b.r*r), rgba(land, 1))
	}
	return img
}

// SetRotation sets the rotation in degrees.
func (s *Sprite) SetRotation(degrees float64) {
	s.degrees = degrees
}

// SetCenter positions the sprite.
func (s *Sprite) SetCenter(x, y float64) {
	s.cx, s.cy = x, y
}

// Hit reports whether (x, y) lies on the disc.
func (s *Sprite) Hit(x, y float64) bool {
	return math.Hypot(x-s.cx, y-s.cy) <= s.radius
}

// Rotation returns the last applied rotation.
func (s *Sprite) Rotation() float64 {
	return s.degrees
}

// Draw renders the sprite at its centre with the current rotation.
func (s *Sprite) Draw() {
	if s.unloaded {
		return
	}
	d := float32(s.radius * 2)
	src := rl.Rectangle{Width: float32(s.tex.Width), Height: float32(s.tex.Height)}
	dst := rl.Rectangle{X: float32(s.cx), Y: float32(s.cy), Width: d, Height: d}
	origin := rl.Vector2{X: d / 2, Y: d / 2}
	rl.DrawTexturePro(s.tex, src, dst, origin, float32(s.degrees), rl.White)
}

// Unload frees the texture. Safe to call twice.
func (s *Sprite) Unload() {
	if s.unloaded {
		return
	}
	rl.UnloadTexture(s.tex)
	s.unloaded = true
}

// Orb is one soft glow on the message page. Position is relative to the
// viewport (0..1), Radius relative to its shorter side.
type Orb struct {
	PosX, PosY float64
	Radius     float64
	Color      surface.Color
	// Layer is the parallax layer index the orb follows
	Layer int
}

// DefaultOrbs places one orb per default parallax layer.
func DefaultOrbs() []Orb {
	return []Orb{
		{PosX: 0.2, PosY: 0.3, Radius: 0.22, Color: surface.Color{R: 255, G: 215, B: 0}, Layer: 0},
		{PosX: 0.8, PosY: 0.25, Radius: 0.18, Color: surface.Color{R: 255, G: 107, B: 107}, Layer: 1},
		{PosX: 0.55, PosY: 0.75, Radius: 0.2, Color: surface.Color{R: 78, G: 205, B: 196}, Layer: 2},
	}
}

// OffsetFunc returns the parallax offset of a layer.
type OffsetFunc func(layer int) (x, y float64)

// Orbs draws large blurred glows that drift with the parallax layers.
type Orbs struct {
	orbs   []Orb
	offset OffsetFunc
	steps  int
}

// NewOrbs creates the renderer. offset may be nil for static orbs.
func NewOrbs(orbs []Orb, offset OffsetFunc) *Orbs {
	return &Orbs{orbs: orbs, offset: offset, steps: 16}
}

// Draw renders every orb into a w x h area.
func (o *Orbs) Draw(w, h float64) {
	side := math.Min(w, h)
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, orb := range o.orbs {
		x, y := orb.PosX*w, orb.PosY*h
		if o.offset != nil {
			dx, dy := o.offset(orb.Layer)
			x += dx
			y += dy
		}
		radius := orb.Radius * side
		for i := o.steps; i > 0; i-- {
			t := float64(i) / float64(o.steps)
			// Faint at the rim, brighter toward the centre
			alpha := (1 - t) * (1 - t) * 0.08
			rl.DrawCircle(int32(x), int32(y), float32(radius*t), rgba(orb.Color, alpha))
		}
	}
	rl.EndBlendMode()
}
