package rotate

import (
	"time"

	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/telemetry"
)

// HitFunc reports whether a pointer position may start a drag.
type HitFunc func(x, y float64) bool

// rotator is the loop and input plumbing shared by Spinner and Orbit. apply
// pushes the orientation to the rendered object; it runs after every move and
// every frame. render, if set, runs once per frame after apply.
type rotator struct {
	name   string
	state  *State
	hit    HitFunc
	apply  func(rot Vec)
	render func()
	resize func(w, h float64)

	sched frame.Scheduler
	bus   *input.Bus
	rec   telemetry.Recorder

	onGrab []func(grabbing bool)

	unsubscribe func()
	handle      frame.Handle
	running     bool
	destroyed   bool
}

func (r *rotator) bind() {
	if r.bus != nil && r.unsubscribe == nil {
		r.unsubscribe = r.bus.Subscribe(r.handleEvent)
	}
}

func (r *rotator) handleEvent(ev input.Event) {
	switch ev.Kind {
	case input.PointerDown:
		r.press(ev.Pos)
	case input.TouchStart:
		// Only a lone first finger grabs; a second finger is ignored
		if ev.SingleTouch() {
			r.press(ev.Pos)
		}
	case input.PointerMove:
		r.move(ev.Pos)
	case input.TouchMove:
		if ev.SingleTouch() {
			r.move(ev.Pos)
		}
	case input.PointerUp, input.TouchEnd:
		if r.state.Release() {
			r.grab(false)
		}
	case input.Resize:
		if r.resize != nil {
			r.resize(ev.Width, ev.Height)
		}
	}
}

func (r *rotator) press(p input.Point) {
	if r.hit != nil && !r.hit(p.X, p.Y) {
		return
	}
	if r.state.Press(p) {
		r.grab(true)
	}
}

func (r *rotator) move(p input.Point) {
	if !r.state.Dragging() {
		return
	}
	r.state.Move(p)
	r.apply(r.state.Rotation)
}

func (r *rotator) grab(grabbing bool) {
	for _, fn := range r.onGrab {
		fn(grabbing)
	}
}

func (r *rotator) start() {
	if r.running || r.destroyed || r.sched == nil {
		return
	}
	r.running = true
	r.handle = r.sched.Request(r.frame)
}

func (r *rotator) stop() {
	r.running = false
	if r.handle != 0 {
		r.sched.Cancel(r.handle)
		r.handle = 0
	}
}

// release cancels the loop and drops the listeners. It reports false if it
// already ran.
func (r *rotator) release() bool {
	if r.destroyed {
		return false
	}
	r.stop()
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.destroyed = true
	return true
}

func (r *rotator) frame(time.Duration) {
	if !r.running {
		return
	}
	start := time.Now()
	r.state.Tick()
	r.apply(r.state.Rotation)
	telemetry.Since(r.rec, r.name, telemetry.PhaseUpdate, start)

	if r.render != nil {
		start = time.Now()
		r.render()
		telemetry.Since(r.rec, r.name, telemetry.PhaseRender, start)
	}
	r.handle = r.sched.Request(r.frame)
}
