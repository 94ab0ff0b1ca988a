// Package term is the terminal backend: particle layers rasterised to
// character cells on a tcell screen, with mouse and resize input.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/festive/surface"
)

// Logical pixels per terminal cell. Terminal cells are roughly twice as tall
// as they are wide.
const (
	CellW = 8
	CellH = 16
)

// ramp maps cell brightness to a glyph, dimmest first.
var ramp = []rune{' ', '.', '·', '+', '*', '✦', '█'}

// Compositor composites Surface layers onto a tcell screen.
type Compositor struct {
	screen tcell.Screen
	layers []*Surface
	labels []label
}

type label struct {
	row  int
	text string
	col  surface.Color
}

// NewCompositor wraps an initialised screen.
func NewCompositor(screen tcell.Screen) *Compositor {
	return &Compositor{screen: screen}
}

// Size returns the screen size in logical pixels.
func (c *Compositor) Size() (w, h float64) {
	cols, rows := c.screen.Size()
	return float64(cols * CellW), float64(rows * CellH)
}

// Pixel maps a cell to the logical position of its centre.
func (c *Compositor) Pixel(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * CellW, (float64(row) + 0.5) * CellH
}

// Factory returns a surface.Factory whose surfaces are composited in the
// order they were created.
func (c *Compositor) Factory() surface.Factory {
	return func(w, h float64) (surface.Surface, error) {
		s := NewSurface(w, h)
		c.layers = append(c.layers, s)
		return s, nil
	}
}

// Label queues a centred line of text for the next Composite.
func (c *Compositor) Label(row int, text string, col surface.Color) {
	c.labels = append(c.labels, label{row: row, text: text, col: col})
}

// Composite adds every live layer, maps each cell to a glyph and shows the
// result. Disposed layers are dropped.
func (c *Compositor) Composite() {
	live := c.layers[:0]
	for _, l := range c.layers {
		if !l.disposed {
			live = append(live, l)
		}
	}
	c.layers = live

	cols, rows := c.screen.Size()
	c.screen.Clear()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var px colorful.Color
			for _, l := range c.layers {
				lc, ok := l.at(col, row)
				if !ok {
					continue
				}
				px = colorful.Color{R: px.R + lc.R, G: px.G + lc.G, B: px.B + lc.B}.Clamped()
			}
			g := glyph(px)
			if g == ' ' {
				continue
			}
			r, gr, b := px.RGB255()
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(gr), int32(b)))
			c.screen.SetContent(col, row, g, nil, style)
		}
	}

	for _, lb := range c.labels {
		start := (cols - len([]rune(lb.text))) / 2
		if start < 0 {
			start = 0
		}
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(lb.col.R), int32(lb.col.G), int32(lb.col.B))).Bold(true)
		for i, r := range []rune(lb.text) {
			c.screen.SetContent(start+i, lb.row, r, nil, style)
		}
	}
	c.labels = c.labels[:0]

	c.screen.Show()
}

// Layers returns the number of live layers as of the last Composite.
func (c *Compositor) Layers() int {
	return len(c.layers)
}

func glyph(c colorful.Color) rune {
	v := math.Max(c.R, math.Max(c.G, c.B))
	if v < 0.04 {
		return ramp[0]
	}
	i := int(v * float64(len(ramp)-1))
	if i < 1 {
		i = 1
	}
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}

