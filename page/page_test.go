package page

import (
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/config"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/motion"
	"github.com/pthm-cable/festive/surface"
)

type fakeEarth struct{ deg float64 }

func (e *fakeEarth) SetRotation(deg float64) { e.deg = deg }

type phaseLog struct{ names map[string]int }

func (l *phaseLog) Record(phase string, _ time.Duration) {
	if l.names == nil {
		l.names = make(map[string]int)
	}
	l.names[phase]++
}

type harness struct {
	cfg      *config.Config
	queue    *frame.Queue
	bus      *input.Bus
	surfaces map[string]*surface.Recorder
	deps     Deps
}

func newHarness(t *testing.T, reduced bool) *harness {
	t.Helper()
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{
		cfg:      cfg,
		queue:    frame.NewQueue(nil),
		bus:      input.NewBus(),
		surfaces: make(map[string]*surface.Recorder),
	}
	h.deps = Deps{
		Sched:  h.queue,
		Bus:    h.bus,
		Policy: motion.Static(reduced),
		View:   camera.NewViewport(800, 600, 1),
		Rng:    rand.New(rand.NewSource(7)),
		Surfaces: func(name string) surface.Factory {
			return surface.RecorderFactory(func(r *surface.Recorder) { h.surfaces[name] = r })
		},
	}
	return h
}

func TestPageComponents(t *testing.T) {
	tests := []struct {
		page    string
		earth   bool
		globe   bool
		mounted []string
	}{
		{Countdown, true, false, []string{"stars", "earth", "snow"}},
		{Countdown, false, false, []string{"stars", "snow"}},
		{Message, false, false, []string{"stars", "parallax", "snow"}},
		{Globe, false, false, []string{"stars"}},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			h := newHarness(t, false)
			if tt.earth {
				h.deps.Earth = &fakeEarth{}
			}
			p, err := New(tt.page, h.cfg, h.deps)
			if err != nil {
				t.Fatal(err)
			}
			if n := p.Mount(); n != len(tt.mounted) {
				t.Errorf("expected %d components, got %d", len(tt.mounted), n)
			}
			if got := p.Mounted(); !slices.Equal(got, tt.mounted) {
				t.Errorf("expected %v, got %v", tt.mounted, got)
			}
			p.Teardown()
		})
	}
}

func TestUnknownPage(t *testing.T) {
	h := newHarness(t, false)
	if _, err := New("credits", h.cfg, h.deps); err == nil || !strings.Contains(err.Error(), "credits") {
		t.Errorf("expected unknown page error, got %v", err)
	}
}

func TestPageFramesDrawEveryLayer(t *testing.T) {
	h := newHarness(t, false)
	rec := &phaseLog{}
	h.deps.Recorder = rec
	h.deps.Earth = &fakeEarth{}

	p, _ := New(Countdown, h.cfg, h.deps)
	p.Mount()

	for i := 1; i <= 3; i++ {
		h.queue.Flush(time.Duration(i) * 16 * time.Millisecond)
	}

	for _, name := range []string{LayerStars, LayerSnow} {
		s := h.surfaces[name]
		if s == nil {
			t.Fatalf("layer %s was never opened", name)
		}
		if s.Clears != 3 || s.Presents != 3 {
			t.Errorf("%s: expected 3 frames, got %d clears %d presents", name, s.Clears, s.Presents)
		}
	}
	for _, phase := range []string{"stars.update", "stars.draw", "snow.update", "earth.update"} {
		if rec.names[phase] != 3 {
			t.Errorf("expected 3 %s samples, got %d", phase, rec.names[phase])
		}
	}
	p.Teardown()
}

func TestTeardownReleasesEverything(t *testing.T) {
	h := newHarness(t, false)
	p, _ := New(Message, h.cfg, h.deps)
	p.Mount()

	if h.queue.Pending() == 0 || h.bus.Len() == 0 {
		t.Fatal("mount should arm loops and bind listeners")
	}

	p.Teardown()
	p.Teardown()

	if h.queue.Pending() != 0 {
		t.Errorf("teardown left %d frames pending", h.queue.Pending())
	}
	if h.bus.Len() != 0 {
		t.Errorf("teardown left %d listeners", h.bus.Len())
	}
	for name, s := range h.surfaces {
		if !s.Disposed() || s.Disposes != 1 {
			t.Errorf("%s: expected one dispose, got %d", name, s.Disposes)
		}
	}

	h.queue.Flush(time.Second)
	p.Resume()
	if h.queue.Pending() != 0 {
		t.Error("a torn down page must not restart")
	}
}

func TestPauseResume(t *testing.T) {
	h := newHarness(t, false)
	p, _ := New(Message, h.cfg, h.deps)
	p.Mount()

	p.Pause()
	if h.queue.Pending() != 0 {
		t.Errorf("pause left %d frames pending", h.queue.Pending())
	}
	p.Resume()
	if h.queue.Pending() != 3 {
		t.Errorf("expected 3 loops after resume, got %d", h.queue.Pending())
	}
	p.Teardown()
}

func TestReducedMotionPage(t *testing.T) {
	h := newHarness(t, true)
	p, _ := New(Message, h.cfg, h.deps)
	p.Mount()
	defer p.Teardown()

	if n := p.Snowfall.Len(); n > h.cfg.ReducedMotion.SnowCount {
		t.Errorf("expected at most %d flakes, got %d", h.cfg.ReducedMotion.SnowCount, n)
	}
	if p.Parallax.Running() {
		t.Error("parallax must not animate under reduced motion")
	}
	if got := p.Starfield.Config().Speed; got != h.cfg.ReducedMotion.StarSpeed {
		t.Errorf("expected star speed %g, got %g", h.cfg.ReducedMotion.StarSpeed, got)
	}
}

func TestTunablesWriteThrough(t *testing.T) {
	h := newHarness(t, false)
	h.deps.Earth = &fakeEarth{}
	p, _ := New(Countdown, h.cfg, h.deps)

	byLabel := make(map[string]Tunable)
	for _, tu := range p.Tunables() {
		byLabel[tu.Label] = tu
		if v := tu.Get(); v < tu.Min || v > tu.Max {
			t.Errorf("%s: default %g outside [%g, %g]", tu.Label, v, tu.Min, tu.Max)
		}
	}

	byLabel["earth damping"].Set(0.9)
	if p.Spinner.State().Damping != 0.9 {
		t.Errorf("earth damping not applied: %g", p.Spinner.State().Damping)
	}
	byLabel["snow wind"].Set(-1)
	if p.Snowfall.Config().Wind != -1 {
		t.Errorf("wind not applied: %g", p.Snowfall.Config().Wind)
	}
	if _, ok := byLabel["globe damping"]; ok {
		t.Error("countdown page has no globe")
	}
}

func TestResizeReachesFields(t *testing.T) {
	h := newHarness(t, false)
	p, _ := New(Globe, h.cfg, h.deps)
	p.Mount()
	defer p.Teardown()

	h.bus.Publish(input.Resized(400, 300))
	if v := p.Stars.Viewport(); v.W != 400 || v.H != 300 {
		t.Errorf("expected 400x300, got %gx%g", v.W, v.H)
	}
	if s := h.surfaces[LayerStars]; s.W != 400 || s.H != 300 {
		t.Errorf("surface not resized: %gx%g", s.W, s.H)
	}
}

func TestDraggableFollowsMountedRotators(t *testing.T) {
	h := newHarness(t, false)
	earth := &fakeEarth{}
	h.deps.Earth = earth
	h.deps.EarthHit = func(x, y float64) bool { return x < 100 && y < 100 }
	p, _ := New(Countdown, h.cfg, h.deps)
	p.Mount()

	if !p.Draggable(50, 50) {
		t.Error("expected the earth to be draggable")
	}
	if p.Draggable(500, 50) {
		t.Error("a press outside the earth must not grab it")
	}

	p.Pause()
	if !p.Draggable(50, 50) {
		t.Error("a paused earth keeps its listeners and must stay draggable")
	}
	h.bus.Publish(input.Pointer(input.PointerDown, 50, 50))
	h.bus.Publish(input.Pointer(input.PointerMove, 60, 50))
	h.bus.Publish(input.Pointer(input.PointerUp, 60, 50))
	if earth.deg == 0 {
		t.Error("dragging a paused earth should still rotate it")
	}

	p.Teardown()
	if p.Draggable(50, 50) {
		t.Error("nothing is draggable after teardown")
	}
}

func TestDraggableWithoutEarth(t *testing.T) {
	h := newHarness(t, false)
	p, _ := New(Countdown, h.cfg, h.deps)
	p.Mount()
	defer p.Teardown()

	if p.Draggable(400, 300) {
		t.Error("an unmounted spinner must not be draggable")
	}
}
