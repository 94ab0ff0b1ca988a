package parallax

import (
	"math"
	"testing"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/motion"
)

func TestTrackerSmoothingFormula(t *testing.T) {
	const f = 0.05
	const target = 0.8

	tr := NewTracker(f, camera.NewViewport(800, 600, 1))
	tr.SetTarget(target, -target)

	for n := 1; n <= 200; n++ {
		tr.Step()
		want := target * (1 - math.Pow(1-f, float64(n)))
		x, y := tr.Current()
		if math.Abs(x-want) > 1e-9 || math.Abs(y+want) > 1e-9 {
			t.Fatalf("frame %d: got (%f, %f), want (%f, %f)", n, x, y, want, -want)
		}
		if x > target {
			t.Fatalf("frame %d: overshoot %f > %f", n, x, target)
		}
	}

	x, _ := tr.Current()
	if math.Abs(x-target) > 1e-4 {
		t.Errorf("expected convergence to %f, got %f", target, x)
	}
}

func TestTrackerPointNormalizes(t *testing.T) {
	tr := NewTracker(1, camera.NewViewport(800, 600, 1))
	tr.Point(800, 0)

	x, y := tr.Target()
	if x != 1 || y != -1 {
		t.Errorf("expected target (1, -1), got (%f, %f)", x, y)
	}

	// Smoothing 1 jumps straight to the target
	tr.Step()
	if px, py := tr.Pixels(); px != 400 || py != -300 {
		t.Errorf("expected pixel offset (400, -300), got (%f, %f)", px, py)
	}
}

func TestTrackerInvalidSmoothing(t *testing.T) {
	tr := NewTracker(0, camera.Viewport{})
	if tr.Smoothing() != DefaultSmoothing {
		t.Errorf("expected default smoothing, got %f", tr.Smoothing())
	}
	tr.SetSmoothing(2)
	if tr.Smoothing() != DefaultSmoothing {
		t.Errorf("out-of-range smoothing should be ignored, got %f", tr.Smoothing())
	}
}

func TestLayersFanOut(t *testing.T) {
	l := NewLayers(15, []float64{2, -1.5, 1})
	if l.Len() != 3 {
		t.Fatalf("expected 3 layers, got %d", l.Len())
	}

	l.Apply(0.5, -1)

	testCases := []struct {
		idx    int
		wx, wy float64
	}{
		{0, 15, -30},
		{1, -11.25, 22.5},
		{2, 7.5, -15},
	}
	for _, tc := range testCases {
		x, y := l.Offset(tc.idx)
		if math.Abs(x-tc.wx) > 1e-9 || math.Abs(y-tc.wy) > 1e-9 {
			t.Errorf("layer %d: got (%f, %f), want (%f, %f)", tc.idx, x, y, tc.wx, tc.wy)
		}
	}

	if x, y := l.Offset(7); x != 0 || y != 0 {
		t.Errorf("unknown layer should be at rest, got (%f, %f)", x, y)
	}
}

func TestLayersAddAfterApply(t *testing.T) {
	l := NewLayers(10, nil)
	l.Apply(1, 1)
	i := l.Add(3)
	if x, _ := l.Offset(i); x != 0 {
		t.Errorf("new layer should start at rest, got %f", x)
	}
	l.Apply(1, 1)
	if x, _ := l.Offset(i); x != 30 {
		t.Errorf("expected 30, got %f", x)
	}
}

func newTestSmoother(reduced bool) (*Smoother, *frame.Queue, *input.Bus) {
	q := frame.NewQueue(nil)
	bus := input.NewBus()
	s := NewSmoother(DefaultConfig(), camera.NewViewport(800, 600, 1), q, bus, motion.Static(reduced))
	return s, q, bus
}

func TestSmootherFollowsPointer(t *testing.T) {
	s, q, bus := newTestSmoother(false)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	bus.Publish(input.Pointer(input.PointerMove, 800, 300))
	if x, _ := s.Target(); x != 1 {
		t.Fatalf("expected target x 1, got %f", x)
	}

	for i := 0; i < 10; i++ {
		q.Flush(0)
	}
	want := 1 - math.Pow(1-DefaultSmoothing, 10)
	if x, _ := s.Current(); math.Abs(x-want) > 1e-9 {
		t.Errorf("expected %f after 10 frames, got %f", want, x)
	}

	// Second layer runs the other way
	if x, _ := s.Layers().Offset(1); x >= 0 {
		t.Errorf("negative multiplier should invert, got %f", x)
	}
}

func TestSmootherResizeRenormalizes(t *testing.T) {
	s, _, bus := newTestSmoother(false)
	s.Init()

	bus.Publish(input.Resized(400, 300))
	bus.Publish(input.Pointer(input.PointerMove, 400, 150))
	if x, y := s.Target(); x != 1 || y != 0 {
		t.Errorf("expected (1, 0) after resize, got (%f, %f)", x, y)
	}
}

func TestSmootherReducedMotionNeverArms(t *testing.T) {
	s, q, bus := newTestSmoother(true)
	s.Init()
	s.Start()

	if s.Running() || q.Pending() != 0 {
		t.Fatal("reduced motion must not arm a loop")
	}

	bus.Publish(input.Pointer(input.PointerMove, 0, 0))
	q.Flush(0)
	if x, y := s.Layers().Offset(0); x != 0 || y != 0 {
		t.Errorf("layers should stay at rest, got (%f, %f)", x, y)
	}
}

func TestSmootherStopAndDestroy(t *testing.T) {
	s, q, bus := newTestSmoother(false)
	s.Init()
	s.Start() // idempotent
	if q.Pending() != 1 {
		t.Fatalf("expected exactly one pending frame, got %d", q.Pending())
	}

	s.Stop()
	bus.Publish(input.Pointer(input.PointerMove, 800, 600))
	q.Flush(0)
	if x, _ := s.Current(); x != 0 {
		t.Errorf("stopped smoother advanced to %f", x)
	}

	s.Start()
	s.Destroy()
	s.Destroy()
	if q.Pending() != 0 {
		t.Errorf("destroy left %d frames pending", q.Pending())
	}
	if bus.Len() != 0 {
		t.Errorf("destroy left %d subscribers", bus.Len())
	}

	s.Start()
	if s.Running() {
		t.Error("destroyed smoother must not restart")
	}
}
