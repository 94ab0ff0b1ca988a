// Package particle animates fixed-size pools of stars and snowflakes on a
// raster surface.
package particle

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/surface"
	"github.com/pthm-cable/festive/telemetry"
)

// DefaultMaxDelta caps the frame delta handed to Update, so a stalled host
// does not teleport the field.
const DefaultMaxDelta = 100 * time.Millisecond

// Simulation is one particle population.
type Simulation interface {
	// Seed rebuilds the pool for the viewport, using initial placement.
	Seed(view camera.Viewport)
	// Update advances the pool by dt; now is the frame timestamp.
	Update(dt, now time.Duration)
	// Draw paints the pool. The surface is already cleared.
	Draw(dst surface.Surface)
	// Len returns the pool size.
	Len() int
}

// EventHandler is implemented by simulations that react to pointer input.
type EventHandler interface {
	HandleEvent(ev input.Event)
}

// Field is the component that owns a Simulation, its surface and its frame
// loop.
type Field struct {
	name     string
	sim      Simulation
	life     *surface.Lifecycle
	sched    frame.Scheduler
	bus      *input.Bus
	view     camera.Viewport
	maxDelta time.Duration
	rec      telemetry.Recorder

	unsubscribe func()
	handle      frame.Handle
	last        time.Duration
	running     bool
	initialized bool
	destroyed   bool
}

// NewField creates a field. Nothing is allocated until Init.
func NewField(name string, sim Simulation, view camera.Viewport, factory surface.Factory, sched frame.Scheduler, bus *input.Bus) *Field {
	return &Field{
		name:     name,
		sim:      sim,
		life:     surface.NewLifecycle(factory),
		sched:    sched,
		bus:      bus,
		view:     view,
		maxDelta: DefaultMaxDelta,
	}
}

// Name identifies the component in logs and telemetry.
func (f *Field) Name() string {
	return f.name
}

// SetMaxDelta changes the frame delta cap. Non-positive values are ignored.
func (f *Field) SetMaxDelta(d time.Duration) {
	if d > 0 {
		f.maxDelta = d
	}
}

// SetRecorder enables phase timing.
func (f *Field) SetRecorder(r telemetry.Recorder) {
	f.rec = r
}

// Init opens the surface at the viewport size, seeds the pool, binds the
// resize and pointer listeners and starts the loop. On error nothing is
// started and the field stays inert.
func (f *Field) Init() error {
	if f.destroyed {
		return fmt.Errorf("%s: %w", f.name, surface.ErrDisposed)
	}
	if f.initialized {
		return nil
	}
	if f.sched == nil {
		return fmt.Errorf("%s: no frame scheduler: %w", f.name, surface.ErrUnavailable)
	}
	if _, err := f.life.Open(f.view.W, f.view.H); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}

	f.sim.Seed(f.view)
	if f.bus != nil {
		f.unsubscribe = f.bus.Subscribe(f.handleEvent)
	}
	f.initialized = true

	slog.Info("field ready", "name", f.name, "particles", f.sim.Len(), "w", f.view.W, "h", f.view.H)
	f.Start()
	return nil
}

func (f *Field) handleEvent(ev input.Event) {
	if ev.Kind == input.Resize {
		f.Resize(ev.Width, ev.Height)
		return
	}
	if h, ok := f.sim.(EventHandler); ok {
		h.HandleEvent(ev)
	}
}

// Resize rescales the surface and rebuilds the pool at the new size.
// Particles are not reprojected.
func (f *Field) Resize(w, h float64) {
	if !f.initialized || f.destroyed || w <= 0 || h <= 0 {
		return
	}
	if !f.view.Resize(w, h) {
		return
	}
	f.life.Resize(w, h)
	f.sim.Seed(f.view)
}

// Start arms the loop if it is not already running. The first frame measures
// its delta from now.
func (f *Field) Start() {
	if f.running || !f.initialized || f.destroyed {
		return
	}
	f.running = true
	f.last = f.sched.Now()
	f.handle = f.sched.Request(f.frame)
}

// Stop cancels the pending frame. No update or draw runs until Start.
func (f *Field) Stop() {
	f.running = false
	if f.handle != 0 {
		f.sched.Cancel(f.handle)
		f.handle = 0
	}
}

// Running reports whether the loop is armed.
func (f *Field) Running() bool {
	return f.running
}

// Destroy stops the loop, releases the listeners and disposes the surface,
// in that order. Safe to call more than once.
func (f *Field) Destroy() {
	if f.destroyed {
		return
	}
	f.Stop()
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
	f.life.Dispose()
	f.destroyed = true
}

// Len returns the pool size.
func (f *Field) Len() int {
	return f.sim.Len()
}

// Viewport returns the current logical size.
func (f *Field) Viewport() camera.Viewport {
	return f.view
}

// Simulation returns the driven population.
func (f *Field) Simulation() Simulation {
	return f.sim
}

func (f *Field) frame(now time.Duration) {
	if !f.running {
		return
	}

	dt := now - f.last
	f.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > f.maxDelta {
		dt = f.maxDelta
	}

	start := time.Now()
	f.sim.Update(dt, now)
	telemetry.Since(f.rec, f.name, telemetry.PhaseUpdate, start)

	if dst := f.life.Surface(); dst != nil {
		start = time.Now()
		dst.Clear()
		f.sim.Draw(dst)
		dst.Present()
		telemetry.Since(f.rec, f.name, telemetry.PhaseDraw, start)
	}

	f.handle = f.sched.Request(f.frame)
}
