package rotate

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/surface"
	"github.com/pthm-cable/festive/telemetry"
)

// Orientable is a mesh whose orientation can be set, in radians.
type Orientable interface {
	SetOrientation(pitch, yaw float64)
}

// Scene is a 3D scene the Orbit owns: meshes to orient, a camera whose
// aspect follows the viewport and a renderer.
type Scene interface {
	// Meshes returns the core mesh first, then any shells that mirror it.
	Meshes() []Orientable
	Render()
	Resize(w, h float64)
	// Dispose releases GPU-side resources.
	Dispose()
}

// SceneFactory builds the scene. It returns an error wrapping
// surface.ErrUnavailable when the 3D backend is missing.
type SceneFactory func() (Scene, error)

// DefaultGlobeTuning is the 3D globe's feel, in radians per pixel.
func DefaultGlobeTuning() Tuning {
	return Tuning{Sensitivity: 0.005, Damping: 0.95, MinVelocity: 0.0001}
}

// Orbit rotates a 3D mesh about two axes: vertical drag pitches, horizontal
// drag yaws. Shell meshes track the core every frame.
type Orbit struct {
	r       rotator
	factory SceneFactory
	scene   Scene
}

// NewOrbit creates an orbit. The scene is built on Init.
func NewOrbit(t Tuning, factory SceneFactory, hit HitFunc, sched frame.Scheduler, bus *input.Bus) *Orbit {
	o := &Orbit{factory: factory}
	o.r = rotator{
		name:   "globe",
		state:  NewState(t, PitchYaw),
		hit:    hit,
		apply:  o.apply,
		render: o.renderScene,
		resize: o.resizeScene,
		sched:  sched,
		bus:    bus,
	}
	return o
}

func (o *Orbit) apply(rot Vec) {
	if o.scene == nil {
		return
	}
	for _, m := range o.scene.Meshes() {
		m.SetOrientation(rot.Pitch, rot.Yaw)
	}
}

func (o *Orbit) renderScene() {
	if o.scene != nil {
		o.scene.Render()
	}
}

func (o *Orbit) resizeScene(w, h float64) {
	if o.scene != nil && w > 0 && h > 0 {
		o.scene.Resize(w, h)
	}
}

// Init builds the scene, binds the drag listeners and starts the loop. If the
// 3D capability is missing it returns the error and starts nothing.
func (o *Orbit) Init() error {
	if o.r.destroyed {
		return fmt.Errorf("%s: %w", o.r.name, surface.ErrDisposed)
	}
	if o.scene != nil {
		return nil
	}
	if o.factory == nil {
		return fmt.Errorf("%s: no 3D backend: %w", o.r.name, surface.ErrUnavailable)
	}
	scene, err := o.factory()
	if err != nil {
		return fmt.Errorf("%s: %w", o.r.name, err)
	}
	o.scene = scene

	o.r.bind()
	o.apply(o.r.state.Rotation)
	o.r.start()
	slog.Info("globe ready", "meshes", len(scene.Meshes()))
	return nil
}

// Name identifies the component in logs and telemetry.
func (o *Orbit) Name() string { return o.r.name }

// SetRecorder enables phase timing.
func (o *Orbit) SetRecorder(rec telemetry.Recorder) { o.r.rec = rec }

// OnGrab registers fn to run when a drag starts (true) or ends (false).
func (o *Orbit) OnGrab(fn func(grabbing bool)) {
	o.r.onGrab = append(o.r.onGrab, fn)
}

// Hit reports whether (x, y) would start a drag.
func (o *Orbit) Hit(x, y float64) bool {
	return o.r.hit == nil || o.r.hit(x, y)
}

// Start re-arms the render loop if it is not running.
func (o *Orbit) Start() { o.r.start() }

// Stop cancels the pending frame.
func (o *Orbit) Stop() { o.r.stop() }

// Running reports whether a frame is armed.
func (o *Orbit) Running() bool { return o.r.running }

// Destroy cancels the loop, drops the listeners and then disposes the scene.
// Safe to call twice.
func (o *Orbit) Destroy() {
	if !o.r.release() {
		return
	}
	if o.scene != nil {
		o.scene.Dispose()
		o.scene = nil
	}
}

// Rotation returns the cumulative pitch and yaw in radians.
func (o *Orbit) Rotation() Vec {
	return o.r.state.Rotation
}

// Velocity returns the current angular velocity per frame.
func (o *Orbit) Velocity() Vec {
	return o.r.state.Velocity
}

// Dragging reports whether the globe is held.
func (o *Orbit) Dragging() bool {
	return o.r.state.Dragging()
}

// State exposes the rotation state for tuning.
func (o *Orbit) State() *State {
	return o.r.state
}
