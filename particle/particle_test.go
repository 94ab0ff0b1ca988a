package particle

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/surface"
)

const frameStep = 16 * time.Millisecond

func TestSnowNeverPassesBottomMargin(t *testing.T) {
	cfg := DefaultSnowConfig()
	view := camera.NewViewport(800, 600, 1)
	rng := rand.New(rand.NewSource(42))

	fl := RespawnFlake(rng, cfg, view)
	fl.Speed = 2.5

	for i := 0; i < 10000; i++ {
		if fl.Step(cfg, view) {
			fl = RespawnFlake(rng, cfg, view)
			fl.Speed = 2.5
		}
		if fl.Y > view.H+cfg.Margin {
			t.Fatalf("frame %d: y %f exceeds %f", i, fl.Y, view.H+cfg.Margin)
		}
	}
}

func TestSnowfallUpdateKeepsFlakesInBounds(t *testing.T) {
	cfg := DefaultSnowConfig()
	view := camera.NewViewport(320, 200, 1)
	sf := NewSnowfall(cfg, rand.New(rand.NewSource(7)), false)
	sf.Seed(view)

	for i := 0; i < 2000; i++ {
		sf.Update(frameStep, 0)
		for _, fl := range sf.Flakes() {
			if fl.Y > view.H+cfg.Margin || fl.X > view.W+cfg.Margin || fl.X < -cfg.Margin {
				t.Fatalf("frame %d: flake escaped to (%f, %f)", i, fl.X, fl.Y)
			}
			if fl.Opacity < 0 || fl.Opacity > 1 || fl.Size < 0 {
				t.Fatalf("frame %d: invalid flake %+v", i, fl)
			}
		}
	}
}

func TestSnowfallInitialSeedCoversHeight(t *testing.T) {
	view := camera.NewViewport(800, 600, 1)
	sf := NewSnowfall(DefaultSnowConfig(), rand.New(rand.NewSource(1)), false)
	sf.Seed(view)

	below := 0
	for _, fl := range sf.Flakes() {
		if fl.Y > 0 {
			below++
		}
	}
	if below == 0 {
		t.Error("initial flakes should be scattered over the viewport, not stacked above it")
	}

	if fl := RespawnFlake(rand.New(rand.NewSource(1)), DefaultSnowConfig(), view); fl.Y != -10 {
		t.Errorf("respawned flakes should enter at -10, got %f", fl.Y)
	}
}

func TestStarDepthStaysPositive(t *testing.T) {
	cfg := DefaultStarConfig()
	cfg.Count = 200
	cfg.Speed = 5
	view := camera.NewViewport(400, 300, 1)

	sf := NewStarfield(cfg, rand.New(rand.NewSource(3)), false)
	sf.Seed(view)

	for _, s := range sf.Stars() {
		if s.Z <= 0 || s.Z > view.W {
			t.Fatalf("seeded star depth %f outside (0, %f]", s.Z, view.W)
		}
	}

	now := time.Duration(0)
	for i := 0; i < 3000; i++ {
		now += frameStep
		sf.Update(frameStep, now)
		for _, s := range sf.Stars() {
			if s.Z <= 0 {
				t.Fatalf("frame %d: star depth %f not positive", i, s.Z)
			}
			if s.Current < 0 || s.Current > 1 {
				t.Fatalf("frame %d: opacity %f out of range", i, s.Current)
			}
		}
	}
}

func TestStarRespawnsAtFarPlane(t *testing.T) {
	view := camera.NewViewport(640, 480, 1)
	s := RespawnStar(rand.New(rand.NewSource(9)), DefaultStarConfig(), view)

	if s.Z != view.W {
		t.Errorf("expected z %f, got %f", view.W, s.Z)
	}
	if math.Abs(s.X) > view.W || math.Abs(s.Y) > view.H {
		t.Errorf("planar position (%f, %f) outside twice the viewport", s.X, s.Y)
	}
}

func TestStarTwinkleRange(t *testing.T) {
	s := Star{Opacity: 0.9, TwinkleSpeed: 0.02}
	for ms := 0.0; ms < 1000; ms += 7 {
		op := s.Twinkle(ms)
		if op < 0.9*0.6-1e-9 || op > 0.9+1e-9 {
			t.Fatalf("twinkle %f at %fms outside [%f, %f]", op, ms, 0.9*0.6, 0.9)
		}
	}
}

func TestStarfieldDrawCullsAndGlows(t *testing.T) {
	cfg := DefaultStarConfig()
	cfg.Count = 0
	view := camera.NewViewport(1000, 500, 1)
	sf := NewStarfield(cfg, rand.New(rand.NewSource(1)), false)
	sf.Seed(view)

	sf.stars = []Star{
		{X: 0, Y: 0, Z: 1000, Size: 2, Color: surface.White, Current: 1},   // centre, scale 1, glows
		{X: 0, Y: 0, Z: 1000, Size: 1, Color: surface.White, Current: 1},   // size 0.8, no glow
		{X: 900, Y: 0, Z: 1000, Size: 2, Color: surface.White, Current: 1}, // projects to 1400, culled
	}

	rec := surface.NewRecorder(1000, 500)
	sf.Draw(rec)

	if len(rec.Discs) != 2 {
		t.Fatalf("expected 2 discs, got %d", len(rec.Discs))
	}
	if len(rec.Glows) != 1 {
		t.Fatalf("expected 1 glow, got %d", len(rec.Glows))
	}
	if d := rec.Discs[1]; d.R != 1 {
		t.Errorf("small star radius should floor at 1, got %f", d.R)
	}
	if g := rec.Glows[0]; math.Abs(g.R-1.6*2.5) > 1e-9 || g.Alpha != 0.5 {
		t.Errorf("unexpected glow %+v", g)
	}
}

func TestStarfieldParallaxShiftsBeforeCull(t *testing.T) {
	cfg := DefaultStarConfig()
	cfg.Count = 0
	cfg.Smoothing = 1
	view := camera.NewViewport(1000, 500, 1)
	sf := NewStarfield(cfg, rand.New(rand.NewSource(1)), false)
	sf.Seed(view)

	// Projects just inside the right edge without parallax
	sf.stars = []Star{{X: 495, Y: 0, Z: 1000, Size: 1, Current: 1}}

	// Pointer at the left edge: -500 px * 0.02 * 1000 pushes it far left
	sf.HandleEvent(input.Pointer(input.PointerMove, 0, 250))
	sf.Update(0, 0)
	sf.stars[0].Z = 1000

	rec := surface.NewRecorder(1000, 500)
	sf.Draw(rec)
	if len(rec.Discs) != 0 {
		t.Errorf("parallax offset should take part in culling, got %d discs", len(rec.Discs))
	}
}

func TestReducedMotionNeverExceedsDefaults(t *testing.T) {
	snow := DefaultSnowConfig()
	rs := NewSnowfall(snow, rand.New(rand.NewSource(1)), true).Config()
	if rs.Count > snow.Count || rs.SpeedMax > snow.SpeedMax {
		t.Errorf("reduced snow %d/%f exceeds defaults %d/%f", rs.Count, rs.SpeedMax, snow.Count, snow.SpeedMax)
	}
	if rs.Count != 30 || rs.SpeedMax != 1 || rs.SpeedMin > rs.SpeedMax {
		t.Errorf("unexpected reduced snow config %+v", rs)
	}

	stars := DefaultStarConfig()
	rst := NewStarfield(stars, rand.New(rand.NewSource(1)), true).Config()
	if rst.Speed > stars.Speed || rst.Count > stars.Count {
		t.Errorf("reduced stars %+v exceed defaults", rst)
	}
	if rst.Speed != 0 {
		t.Errorf("expected frozen depth motion, got speed %f", rst.Speed)
	}

	// A reduced cap above the default must not raise it
	snow.ReducedCount = 500
	snow.ReducedMaxSpeed = 9
	if got := snow.Adapt(true); got.Count != snow.Count || got.SpeedMax != snow.SpeedMax {
		t.Errorf("adapt raised limits: %+v", got)
	}
}

func TestFrozenStarsStillTwinkle(t *testing.T) {
	cfg := DefaultStarConfig()
	cfg.Count = 20
	sf := NewStarfield(cfg, rand.New(rand.NewSource(5)), true)
	sf.Seed(camera.NewViewport(400, 300, 1))

	before := make([]Star, sf.Len())
	copy(before, sf.Stars())

	sf.Update(frameStep, 100*time.Millisecond)
	sf.Update(frameStep, 900*time.Millisecond)

	changed := false
	for i, s := range sf.Stars() {
		if s.Z != before[i].Z {
			t.Fatalf("star %d moved in depth under reduced motion", i)
		}
		if s.Current != before[i].Current {
			changed = true
		}
	}
	if !changed {
		t.Error("expected twinkle to continue")
	}
}

// countingSim records how often the field drives it.
type countingSim struct {
	seeds, updates, draws int
	lastDT                time.Duration
	view                  camera.Viewport
}

func (c *countingSim) Seed(v camera.Viewport)     { c.seeds++; c.view = v }
func (c *countingSim) Update(dt, _ time.Duration) { c.updates++; c.lastDT = dt }
func (c *countingSim) Draw(surface.Surface)       { c.draws++ }
func (c *countingSim) Len() int                   { return int(c.view.W) }

func newTestField(factory surface.Factory) (*Field, *countingSim, *frame.Queue, *input.Bus) {
	sim := &countingSim{}
	q := frame.NewQueue(nil)
	bus := input.NewBus()
	f := NewField("test", sim, camera.NewViewport(200, 100, 1), factory, q, bus)
	return f, sim, q, bus
}

func TestFieldRunsUpdateThenDraw(t *testing.T) {
	var rec *surface.Recorder
	f, sim, q, _ := newTestField(surface.RecorderFactory(func(r *surface.Recorder) { rec = r }))

	if err := f.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if sim.seeds != 1 {
		t.Errorf("expected one seed, got %d", sim.seeds)
	}

	q.Flush(16 * time.Millisecond)
	q.Flush(32 * time.Millisecond)

	if sim.updates != 2 || sim.draws != 2 {
		t.Errorf("expected 2 updates and draws, got %d/%d", sim.updates, sim.draws)
	}
	if rec.Clears != 2 || rec.Presents != 2 {
		t.Errorf("expected a cleared and presented surface each frame, got %d/%d", rec.Clears, rec.Presents)
	}
	if sim.lastDT != 16*time.Millisecond {
		t.Errorf("expected 16ms delta, got %v", sim.lastDT)
	}
}

func TestFieldClampsDelta(t *testing.T) {
	f, sim, q, _ := newTestField(surface.RecorderFactory(nil))
	f.Init()

	q.Flush(5 * time.Second)
	if sim.lastDT != DefaultMaxDelta {
		t.Errorf("expected delta clamped to %v, got %v", DefaultMaxDelta, sim.lastDT)
	}
}

func TestFieldStopPreventsFrames(t *testing.T) {
	f, sim, q, _ := newTestField(surface.RecorderFactory(nil))
	f.Init()
	f.Start() // idempotent
	if q.Pending() != 1 {
		t.Fatalf("expected one pending frame, got %d", q.Pending())
	}

	f.Stop()
	f.Stop()
	for i := 0; i < 5; i++ {
		q.Flush(time.Duration(i) * frameStep)
	}
	if sim.updates != 0 || sim.draws != 0 {
		t.Errorf("stopped field ran %d updates and %d draws", sim.updates, sim.draws)
	}

	f.Start()
	q.Flush(10 * frameStep)
	if sim.updates != 1 {
		t.Errorf("restarted field should run, got %d updates", sim.updates)
	}
}

func TestFieldDestroyTwice(t *testing.T) {
	var rec *surface.Recorder
	f, _, q, bus := newTestField(surface.RecorderFactory(func(r *surface.Recorder) { rec = r }))
	f.Init()

	f.Destroy()
	f.Destroy()

	if rec.Disposes != 1 {
		t.Errorf("expected one dispose, got %d", rec.Disposes)
	}
	if q.Pending() != 0 || bus.Len() != 0 {
		t.Errorf("destroy left %d frames and %d listeners", q.Pending(), bus.Len())
	}
	if err := f.Init(); !errors.Is(err, surface.ErrDisposed) {
		t.Errorf("expected ErrDisposed on re-init, got %v", err)
	}
	f.Start()
	if f.Running() {
		t.Error("destroyed field must not restart")
	}
}

func TestFieldResizeRebuildsPool(t *testing.T) {
	var rec *surface.Recorder
	f, sim, _, bus := newTestField(surface.RecorderFactory(func(r *surface.Recorder) { rec = r }))
	f.Init()

	bus.Publish(input.Resized(640, 480))
	if sim.seeds != 2 || sim.view.W != 640 {
		t.Errorf("expected pool rebuilt at 640 wide, got %d seeds at %f", sim.seeds, sim.view.W)
	}
	if w, h := rec.Size(); w != 640 || h != 480 {
		t.Errorf("expected surface 640x480, got %gx%g", w, h)
	}

	// Same size is not a resize
	bus.Publish(input.Resized(640, 480))
	if sim.seeds != 2 {
		t.Errorf("same-size resize rebuilt the pool")
	}
}

func TestFieldMissingSurfaceIsSoft(t *testing.T) {
	f, sim, q, bus := newTestField(nil)

	err := f.Init()
	if !errors.Is(err, surface.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if f.Running() || q.Pending() != 0 || bus.Len() != 0 {
		t.Error("failed init must not start a loop or bind listeners")
	}
	if sim.seeds != 0 {
		t.Error("failed init must not seed the pool")
	}
}

func TestFieldNoTarget(t *testing.T) {
	sim := &countingSim{}
	f := NewField("empty", sim, camera.Viewport{}, surface.RecorderFactory(nil), frame.NewQueue(nil), nil)
	if err := f.Init(); !errors.Is(err, surface.ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
}

func TestFieldDrawAfterDisposeIsNoop(t *testing.T) {
	var rec *surface.Recorder
	f, sim, q, _ := newTestField(surface.RecorderFactory(func(r *surface.Recorder) { rec = r }))
	f.Init()

	// Surface torn down underneath a running loop
	f.life.Dispose()
	q.Flush(frameStep)

	if sim.updates != 1 || sim.draws != 0 {
		t.Errorf("expected update without draw, got %d/%d", sim.updates, sim.draws)
	}
	if rec.Clears != 0 {
		t.Error("disposed surface was drawn to")
	}
}
