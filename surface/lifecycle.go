package surface

import "fmt"

// Lifecycle owns one surface: it creates it at the viewport size, resizes it
// in place and disposes it exactly once.
type Lifecycle struct {
	factory  Factory
	surf     Surface
	disposed bool
}

// NewLifecycle creates a lifecycle around factory. A nil factory means the
// capability is missing and Open fails with ErrUnavailable.
func NewLifecycle(factory Factory) *Lifecycle {
	return &Lifecycle{factory: factory}
}

// Open creates the surface. Opening twice returns the existing surface.
func (l *Lifecycle) Open(w, h float64) (Surface, error) {
	if l.disposed {
		return nil, ErrDisposed
	}
	if l.surf != nil {
		return l.surf, nil
	}
	if l.factory == nil {
		return nil, ErrUnavailable
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: viewport %gx%g", ErrNoTarget, w, h)
	}

	s, err := l.factory(w, h)
	if err != nil {
		return nil, fmt.Errorf("creating surface: %w", err)
	}
	l.surf = s
	return s, nil
}

// Surface returns the live surface, or nil before Open and after Dispose.
func (l *Lifecycle) Surface() Surface {
	if l.disposed {
		return nil
	}
	return l.surf
}

// Resize rescales the live surface. Degenerate sizes and calls after
// Dispose are ignored; it reports whether the surface changed.
func (l *Lifecycle) Resize(w, h float64) bool {
	s := l.Surface()
	if s == nil || w <= 0 || h <= 0 {
		return false
	}
	cw, ch := s.Size()
	if cw == w && ch == h {
		return false
	}
	s.Resize(w, h)
	return true
}

// Dispose releases the surface. It reports true only on the first call.
func (l *Lifecycle) Dispose() bool {
	if l.disposed {
		return false
	}
	l.disposed = true
	if l.surf != nil {
		l.surf.Dispose()
		l.surf = nil
	}
	return true
}

// Disposed reports whether Dispose has run.
func (l *Lifecycle) Disposed() bool {
	return l.disposed
}
