package surface

// DiscCall is one recorded Disc.
type DiscCall struct {
	X, Y, R float64
	Color   Color
	Alpha   float64
}

// GlowCall is one recorded Glow.
type GlowCall struct {
	X, Y, R float64
	Stops   []Stop
	Alpha   float64
}

// Recorder is an in-memory Surface that records the calls made on it.
// Headless runs and tests use it in place of a real raster.
type Recorder struct {
	W, H float64

	Clears   int
	Presents int
	Resizes  int
	Disposes int

	// Calls since the last Clear
	Discs []DiscCall
	Glows []GlowCall

	disposed bool
}

// NewRecorder creates a recorder of the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// RecorderFactory returns a Factory producing recorders and reporting each
// one through sink (which may be nil).
func RecorderFactory(sink func(*Recorder)) Factory {
	return func(w, h float64) (Surface, error) {
		r := NewRecorder(w, h)
		if sink != nil {
			sink(r)
		}
		return r, nil
	}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() {
	if r.disposed {
		return
	}
	r.Clears++
	r.Discs = r.Discs[:0]
	r.Glows = r.Glows[:0]
}

func (r *Recorder) Disc(x, y, rad float64, c Color, alpha float64) {
	if r.disposed {
		return
	}
	r.Discs = append(r.Discs, DiscCall{X: x, Y: y, R: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) Glow(x, y, rad float64, stops []Stop, alpha float64) {
	if r.disposed {
		return
	}
	r.Glows = append(r.Glows, GlowCall{X: x, Y: y, R: rad, Stops: stops, Alpha: alpha})
}

func (r *Recorder) Present() {
	if r.disposed {
		return
	}
	r.Presents++
}

func (r *Recorder) Resize(w, h float64) {
	if r.disposed {
		return
	}
	r.W, r.H = w, h
	r.Resizes++
}

func (r *Recorder) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.Disposes++
}

// Disposed reports whether Dispose ran.
func (r *Recorder) Disposed() bool {
	return r.disposed
}
