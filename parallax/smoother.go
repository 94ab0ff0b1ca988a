package parallax

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/motion"
	"github.com/pthm-cable/festive/telemetry"
)

// Config tunes a Smoother.
type Config struct {
	Smoothing float64
	// Strength is the pixel offset of a multiplier-1 layer at full deflection
	Strength float64
	// Layers holds one multiplier per consumer
	Layers []float64
}

// DefaultConfig matches the message page orbs.
func DefaultConfig() Config {
	return Config{
		Smoothing: DefaultSmoothing,
		Strength:  15,
		Layers:    []float64{2, -1.5, 1},
	}
}

// Smoother is the mouse-parallax component: pointer moves set the target,
// each frame the current position eases toward it and every layer offset is
// recomputed.
type Smoother struct {
	name    string
	tracker *Tracker
	layers  *Layers

	sched   frame.Scheduler
	bus     *input.Bus
	reduced bool
	rec     telemetry.Recorder

	unsubscribe func()
	handle      frame.Handle
	running     bool
	destroyed   bool
}

// NewSmoother creates a smoother over view. The reduced-motion policy is
// read once here.
func NewSmoother(cfg Config, view camera.Viewport, sched frame.Scheduler, bus *input.Bus, policy motion.Policy) *Smoother {
	return &Smoother{
		name:    "parallax",
		tracker: NewTracker(cfg.Smoothing, view),
		layers:  NewLayers(cfg.Strength, cfg.Layers),
		sched:   sched,
		bus:     bus,
		reduced: policy != nil && policy.PrefersReducedMotion(),
	}
}

// SetRecorder enables phase timing.
func (s *Smoother) SetRecorder(r telemetry.Recorder) {
	s.rec = r
}

// Name identifies the component in logs and telemetry.
func (s *Smoother) Name() string {
	return s.name
}

// Init binds the pointer listeners and starts the loop. Under reduced motion
// the loop is never armed, so every layer stays at rest.
func (s *Smoother) Init() error {
	if s.destroyed || s.unsubscribe != nil {
		return nil
	}
	if s.bus != nil {
		s.unsubscribe = s.bus.Subscribe(s.handleEvent)
	}
	if s.reduced {
		slog.Info("parallax disabled", "reason", "reduced motion")
		return nil
	}
	s.Start()
	return nil
}

func (s *Smoother) handleEvent(ev input.Event) {
	switch ev.Kind {
	case input.PointerMove:
		s.tracker.Point(ev.Pos.X, ev.Pos.Y)
	case input.TouchMove:
		if ev.SingleTouch() {
			s.tracker.Point(ev.Pos.X, ev.Pos.Y)
		}
	case input.Resize:
		view := s.tracker.Viewport()
		view.Resize(ev.Width, ev.Height)
		s.tracker.SetViewport(view)
	}
}

// Start arms the loop if it is not already running.
func (s *Smoother) Start() {
	if s.running || s.reduced || s.destroyed || s.sched == nil {
		return
	}
	s.running = true
	s.handle = s.sched.Request(s.frame)
}

// Stop cancels the pending frame.
func (s *Smoother) Stop() {
	s.running = false
	if s.handle != 0 {
		s.sched.Cancel(s.handle)
		s.handle = 0
	}
}

// Running reports whether the loop is armed.
func (s *Smoother) Running() bool {
	return s.running
}

// Destroy stops the loop and releases the listeners. Safe to call twice.
func (s *Smoother) Destroy() {
	if s.destroyed {
		return
	}
	s.Stop()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.destroyed = true
}

func (s *Smoother) frame(time.Duration) {
	if !s.running {
		return
	}
	start := time.Now()
	s.Step()
	telemetry.Since(s.rec, s.name, telemetry.PhaseUpdate, start)
	s.handle = s.sched.Request(s.frame)
}

// Step advances the smoothing by one frame and refreshes the layers.
func (s *Smoother) Step() {
	s.tracker.Step()
	s.layers.Apply(s.tracker.Current())
}

// Current returns the smoothed normalized pointer position.
func (s *Smoother) Current() (x, y float64) {
	return s.tracker.Current()
}

// Target returns the normalized pointer target.
func (s *Smoother) Target() (x, y float64) {
	return s.tracker.Target()
}

// Layers returns the layer registry for consumers reading offsets.
func (s *Smoother) Layers() *Layers {
	return s.layers
}

// Tracker exposes the smoothing state for tuning.
func (s *Smoother) Tracker() *Tracker {
	return s.tracker
}
