package rotate

import (
	"fmt"

	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/surface"
	"github.com/pthm-cable/festive/telemetry"
)

// Transform receives the flat rotation, in degrees.
type Transform interface {
	SetRotation(degrees float64)
}

// DefaultFlatTuning is the flat earth's feel: half a degree per pixel.
func DefaultFlatTuning() Tuning {
	return Tuning{Sensitivity: 0.5, Damping: 0.98, MinVelocity: 0.1}
}

// Spinner rotates a flat image about its centre from horizontal drags.
type Spinner struct {
	r      rotator
	target Transform
}

// NewSpinner creates a spinner driving target. hit limits where a drag may
// start; nil accepts any position.
func NewSpinner(t Tuning, target Transform, hit HitFunc, sched frame.Scheduler, bus *input.Bus) *Spinner {
	sp := &Spinner{target: target}
	sp.r = rotator{
		name:  "earth",
		state: NewState(t, Yaw),
		hit:   hit,
		apply: sp.apply,
		sched: sched,
		bus:   bus,
	}
	return sp
}

func (sp *Spinner) apply(rot Vec) {
	sp.target.SetRotation(rot.Yaw)
}

// Init binds the drag listeners and starts the momentum loop.
func (sp *Spinner) Init() error {
	if sp.r.destroyed {
		return fmt.Errorf("%s: %w", sp.r.name, surface.ErrDisposed)
	}
	if sp.target == nil {
		return fmt.Errorf("%s: no image to rotate: %w", sp.r.name, surface.ErrNoTarget)
	}
	sp.r.bind()
	sp.apply(sp.r.state.Rotation)
	sp.r.start()
	return nil
}

// Name identifies the component in logs and telemetry.
func (sp *Spinner) Name() string { return sp.r.name }

// SetRecorder enables phase timing.
func (sp *Spinner) SetRecorder(rec telemetry.Recorder) { sp.r.rec = rec }

// OnGrab registers fn to run when a drag starts (true) or ends (false).
func (sp *Spinner) OnGrab(fn func(grabbing bool)) {
	sp.r.onGrab = append(sp.r.onGrab, fn)
}

// Hit reports whether (x, y) would start a drag.
func (sp *Spinner) Hit(x, y float64) bool {
	return sp.r.hit == nil || sp.r.hit(x, y)
}

// Start re-arms the momentum loop if it is not running.
func (sp *Spinner) Start() { sp.r.start() }

// Stop cancels the pending frame.
func (sp *Spinner) Stop() { sp.r.stop() }

// Running reports whether a frame is armed.
func (sp *Spinner) Running() bool { return sp.r.running }

// Destroy cancels the loop and drops the listeners. Safe to call twice.
func (sp *Spinner) Destroy() {
	sp.r.release()
}

// Angle returns the cumulative rotation in degrees.
func (sp *Spinner) Angle() float64 {
	return sp.r.state.Rotation.Yaw
}

// Velocity returns the current angular velocity in degrees per frame.
func (sp *Spinner) Velocity() float64 {
	return sp.r.state.Velocity.Yaw
}

// Dragging reports whether the image is held.
func (sp *Spinner) Dragging() bool {
	return sp.r.state.Dragging()
}

// State exposes the rotation state for tuning.
func (sp *Spinner) State() *State {
	return sp.r.state
}
