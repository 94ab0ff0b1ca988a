// Package page composes the animated components of each festive page and
// owns their mount and teardown order.
package page

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/config"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/motion"
	"github.com/pthm-cable/festive/parallax"
	"github.com/pthm-cable/festive/particle"
	"github.com/pthm-cable/festive/rotate"
	"github.com/pthm-cable/festive/surface"
	"github.com/pthm-cable/festive/telemetry"
)

// Page names.
const (
	Countdown = "countdown"
	Message   = "message"
	Globe     = "globe"
)

// Surface layer names passed to Deps.Surfaces.
const (
	LayerStars = "stars"
	LayerSnow  = "snow"
)

// Component is the lifecycle every animated piece exposes to the page.
type Component interface {
	Name() string
	// Init allocates, binds listeners and starts the loop. An error means
	// the component stays inert; the rest of the page carries on.
	Init() error
	Start()
	Stop()
	// Destroy cancels the loop before releasing anything. Safe to call twice.
	Destroy()
}

type recordable interface {
	SetRecorder(telemetry.Recorder)
}

// Deps is everything the host provides to a page.
type Deps struct {
	Sched  frame.Scheduler
	Bus    *input.Bus
	Policy motion.Policy
	View   camera.Viewport
	Rng    *rand.Rand

	// Recorder receives per-component phase timings; nil disables them
	Recorder telemetry.Recorder

	// Surfaces returns the factory for a named 2D layer
	Surfaces func(layer string) surface.Factory

	// Earth is the flat image the countdown page spins; nil leaves the
	// spinner without a target
	Earth    rotate.Transform
	EarthHit rotate.HitFunc

	// Globe builds the 3D scene; nil means the backend has no 3D support
	Globe    rotate.SceneFactory
	GlobeHit rotate.HitFunc
}

// Page is one mounted set of components.
type Page struct {
	name string

	Stars     *particle.Field
	Starfield *particle.Starfield
	Snow      *particle.Field
	Snowfall  *particle.Snowfall
	Spinner   *rotate.Spinner
	Orbit     *rotate.Orbit
	Parallax  *parallax.Smoother

	rec        telemetry.Recorder
	components []Component
	mounted    []Component
	torn       bool
}

// New builds the components for the named page. Nothing is started until
// Mount.
func New(name string, cfg *config.Config, d Deps) (*Page, error) {
	if d.Rng == nil {
		d.Rng = rand.New(rand.NewSource(1))
	}
	reduced := d.Policy != nil && d.Policy.PrefersReducedMotion()
	p := &Page{name: name, rec: d.Recorder}

	stars := func() {
		p.Starfield = particle.NewStarfield(StarConfig(cfg), d.Rng, reduced)
		p.Stars = particle.NewField("stars", p.Starfield, d.View, layer(d, LayerStars), d.Sched, d.Bus)
		p.Stars.SetMaxDelta(cfg.Derived.MaxDelta)
		p.components = append(p.components, p.Stars)
	}
	snow := func() {
		p.Snowfall = particle.NewSnowfall(SnowConfig(cfg), d.Rng, reduced)
		p.Snow = particle.NewField("snow", p.Snowfall, d.View, layer(d, LayerSnow), d.Sched, d.Bus)
		p.Snow.SetMaxDelta(cfg.Derived.MaxDelta)
		p.components = append(p.components, p.Snow)
	}

	switch name {
	case Countdown:
		stars()
		p.Spinner = rotate.NewSpinner(EarthTuning(cfg), d.Earth, d.EarthHit, d.Sched, d.Bus)
		p.components = append(p.components, p.Spinner)
		snow()
	case Message:
		stars()
		p.Parallax = parallax.NewSmoother(ParallaxConfig(cfg), d.View, d.Sched, d.Bus, d.Policy)
		p.components = append(p.components, p.Parallax)
		snow()
	case Globe:
		stars()
		p.Orbit = rotate.NewOrbit(GlobeTuning(cfg), d.Globe, d.GlobeHit, d.Sched, d.Bus)
		p.components = append(p.components, p.Orbit)
	default:
		return nil, fmt.Errorf("unknown page %q", name)
	}
	return p, nil
}

func layer(d Deps, name string) surface.Factory {
	if d.Surfaces == nil {
		return nil
	}
	return d.Surfaces(name)
}

// Name returns the page name.
func (p *Page) Name() string {
	return p.name
}

// Mount initialises every component in order. A component that fails to
// initialise is logged and skipped. It returns the number mounted.
func (p *Page) Mount() int {
	if p.torn || len(p.mounted) > 0 {
		return len(p.mounted)
	}
	for _, c := range p.components {
		if r, ok := c.(recordable); ok && p.rec != nil {
			r.SetRecorder(p.rec)
		}
		if err := c.Init(); err != nil {
			slog.Warn("component unavailable", "page", p.name, "component", c.Name(), "error", err)
			continue
		}
		p.mounted = append(p.mounted, c)
	}
	slog.Info("page mounted", "page", p.name, "components", len(p.mounted), "skipped", len(p.components)-len(p.mounted))
	return len(p.mounted)
}

// Mounted returns the names of the components that initialised.
func (p *Page) Mounted() []string {
	names := make([]string, len(p.mounted))
	for i, c := range p.mounted {
		names[i] = c.Name()
	}
	return names
}

// Pause stops every mounted loop.
func (p *Page) Pause() {
	for _, c := range p.mounted {
		c.Stop()
	}
}

// Resume restarts every mounted loop.
func (p *Page) Resume() {
	if p.torn {
		return
	}
	for _, c := range p.mounted {
		c.Start()
	}
}

// Draggable reports whether a press at (x, y) would grab a mounted rotator.
// Rotators keep their listeners while paused, so a paused page stays
// draggable; a torn down one does not.
func (p *Page) Draggable(x, y float64) bool {
	if p.torn {
		return false
	}
	for _, c := range p.mounted {
		switch r := c.(type) {
		case *rotate.Spinner:
			if r.Hit(x, y) {
				return true
			}
		case *rotate.Orbit:
			if r.Hit(x, y) {
				return true
			}
		}
	}
	return false
}

// Teardown destroys every component, last mounted first. Safe to call twice.
func (p *Page) Teardown() {
	if p.torn {
		return
	}
	p.torn = true
	for i := len(p.components) - 1; i >= 0; i-- {
		p.components[i].Destroy()
	}
	slog.Info("page torn down", "page", p.name)
}
