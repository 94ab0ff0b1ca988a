package term

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/festive/anim"
	"github.com/pthm-cable/festive/surface"
)

// Surface is a surface.Surface rasterised to terminal cells. Each cell
// holds light added over black.
type Surface struct {
	w, h       float64
	cols, rows int
	cells      []colorful.Color
	front      []colorful.Color

	inFrame  bool
	disposed bool
}

// NewSurface creates a surface of logical size w x h.
func NewSurface(w, h float64) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) Clear() {
	if s.disposed {
		return
	}
	for i := range s.cells {
		s.cells[i] = colorful.Color{}
	}
	s.inFrame = true
}

// Disc blends c over the cell under the centre, and every other cell whose
// centre the disc covers.
func (s *Surface) Disc(x, y, r float64, c surface.Color, alpha float64) {
	if !s.inFrame {
		return
	}
	src := c.Colorful()
	s.eachCell(x, y, r, func(i int, _ float64) {
		s.cells[i] = s.cells[i].BlendRgb(src, anim.Clamp(alpha, 0, 1))
	})
}

// Glow adds the gradient's colour at each covered cell centre.
func (s *Surface) Glow(x, y, r float64, stops []surface.Stop, alpha float64) {
	if !s.inFrame || len(stops) == 0 || r <= 0 {
		return
	}
	s.eachCell(x, y, r, func(i int, t float64) {
		col, a := sample(stops, t)
		k := a * alpha
		cur := s.cells[i]
		s.cells[i] = colorful.Color{R: cur.R + col.R*k, G: cur.G + col.G*k, B: cur.B + col.B*k}.Clamped()
	})
}

// eachCell calls fn for the cell containing (x, y) and every cell whose
// centre lies within r, with the centre's distance as a fraction of r.
func (s *Surface) eachCell(x, y, r float64, fn func(i int, t float64)) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	cc, cr := int(x/CellW), int(y/CellH)
	if cc < s.cols && cr < s.rows {
		fn(cr*s.cols+cc, 0)
	}
	c0, c1 := int((x-r)/CellW), int((x+r)/CellW)
	r0, r1 := int((y-r)/CellH), int((y+r)/CellH)
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			if col == cc && row == cr {
				continue
			}
			px := (float64(col) + 0.5) * CellW
			py := (float64(row) + 0.5) * CellH
			d := math.Hypot(px-x, py-y)
			if d <= r {
				fn(row*s.cols+col, d/r)
			}
		}
	}
}

// sample interpolates the gradient at t in [0, 1].
func sample(stops []surface.Stop, t float64) (colorful.Color, float64) {
	if t <= stops[0].Offset {
		return stops[0].Color.Colorful(), stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			f := 1.0
			if span > 0 {
				f = (t - a.Offset) / span
			}
			return a.Color.Colorful().BlendRgb(b.Color.Colorful(), f), a.Alpha + (b.Alpha-a.Alpha)*f
		}
	}
	last := stops[len(stops)-1]
	return last.Color.Colorful(), last.Alpha
}

// Present publishes the frame to the compositor.
func (s *Surface) Present() {
	if !s.inFrame {
		return
	}
	copy(s.front, s.cells)
	s.inFrame = false
}

func (s *Surface) Resize(w, h float64) {
	if s.disposed {
		return
	}
	s.w, s.h = w, h
	s.cols = int(math.Ceil(w / CellW))
	s.rows = int(math.Ceil(h / CellH))
	n := max(s.cols*s.rows, 0)
	s.cells = make([]colorful.Color, n)
	s.front = make([]colorful.Color, n)
	s.inFrame = false
}

func (s *Surface) Dispose() {
	s.disposed = true
	s.cells = nil
	s.front = nil
}

// Disposed reports whether Dispose ran.
func (s *Surface) Disposed() bool {
	return s.disposed
}

// at returns the presented colour of a cell.
func (s *Surface) at(col, row int) (colorful.Color, bool) {
	if col >= s.cols || row >= s.rows || s.disposed {
		return colorful.Color{}, false
	}
	return s.front[row*s.cols+col], true
}
