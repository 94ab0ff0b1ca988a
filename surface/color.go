package surface

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB colour. Transparency travels separately as an
// alpha argument so particles can modulate it per frame.
type Color struct {
	R, G, B uint8
}

// White is the default particle colour.
var White = Color{R: 255, G: 255, B: 255}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// ParsePalette parses every entry of a hex palette.
func ParsePalette(hex []string) ([]Color, error) {
	out := make([]Color, 0, len(hex))
	for _, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Colorful converts to a go-colorful colour for blending.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes c toward other by t in [0, 1] (RGB space).
func (c Color) Blend(other Color, t float64) Color {
	r, g, b := c.Colorful().BlendRgb(other.Colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Stop is one colour stop of a radial gradient. Offset runs from the centre
// (0) to the rim (1).
type Stop struct {
	Offset float64
	Color  Color
	Alpha  float64
}

// SoftGlow returns the three-stop halo used around stars: solid core out to
// 40% of the radius, fading to transparent at the rim.
func SoftGlow(c Color) []Stop {
	return []Stop{
		{Offset: 0, Color: c, Alpha: 1},
		{Offset: 0.4, Color: c, Alpha: 1},
		{Offset: 1, Color: c, Alpha: 0},
	}
}

// FadeGlow returns a two-stop halo from alpha at the centre to transparent.
func FadeGlow(c Color, alpha float64) []Stop {
	return []Stop{
		{Offset: 0, Color: c, Alpha: alpha},
		{Offset: 1, Color: c, Alpha: 0},
	}
}
