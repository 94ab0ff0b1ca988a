package camera

import (
	"math"
	"testing"
)

func TestNewViewport(t *testing.T) {
	v := NewViewport(1280, 720, 0)
	if v.DPR != 1 {
		t.Errorf("expected DPR fallback 1, got %f", v.DPR)
	}

	cx, cy := v.Center()
	if cx != 640 || cy != 360 {
		t.Errorf("expected centre (640, 360), got (%f, %f)", cx, cy)
	}
}

func TestPhysicalSize(t *testing.T) {
	v := NewViewport(1280, 720, 2)
	pw, ph := v.Physical()
	if pw != 2560 || ph != 1440 {
		t.Errorf("expected 2560x1440, got %dx%d", pw, ph)
	}
}

func TestNormalize(t *testing.T) {
	v := NewViewport(1280, 720, 1)

	testCases := []struct {
		x, y, nx, ny float64
	}{
		{640, 360, 0, 0},   // centre
		{0, 0, -1, -1},     // top-left
		{1280, 720, 1, 1},  // bottom-right
		{960, 180, 0.5, -0.5},
	}

	for _, tc := range testCases {
		nx, ny := v.Normalize(tc.x, tc.y)
		if math.Abs(nx-tc.nx) > 1e-9 || math.Abs(ny-tc.ny) > 1e-9 {
			t.Errorf("Normalize(%f, %f) = (%f, %f), want (%f, %f)", tc.x, tc.y, nx, ny, tc.nx, tc.ny)
		}
	}

	var empty Viewport
	if nx, ny := empty.Normalize(5, 5); nx != 0 || ny != 0 {
		t.Errorf("empty viewport should normalize to origin, got (%f, %f)", nx, ny)
	}
}

func TestVisible(t *testing.T) {
	v := NewViewport(800, 600, 1)

	if !v.Visible(400, 300, CullMargin) {
		t.Error("centre should be visible")
	}
	if !v.Visible(-9, 610, CullMargin) {
		t.Error("point inside the margin should be visible")
	}
	if v.Visible(-11, 300, CullMargin) {
		t.Error("point past the margin should be culled")
	}
	if v.Visible(400, 611, CullMargin) {
		t.Error("point past the bottom margin should be culled")
	}
}

func TestResize(t *testing.T) {
	v := NewViewport(800, 600, 1)
	if v.Resize(800, 600) {
		t.Error("same size should report no change")
	}
	if !v.Resize(1024, 768) || v.W != 1024 || v.H != 768 {
		t.Errorf("expected 1024x768, got %fx%f", v.W, v.H)
	}
}

func TestPerspectiveAspectFollowsResize(t *testing.T) {
	p := NewPerspective(45, 800, 400, 0.1, 1000, 500)
	if p.Aspect != 2 {
		t.Errorf("expected aspect 2, got %f", p.Aspect)
	}

	p.Resize(300, 600)
	if p.Aspect != 0.5 {
		t.Errorf("expected aspect 0.5, got %f", p.Aspect)
	}

	p.Resize(0, 600)
	if p.Aspect != 0.5 {
		t.Errorf("degenerate resize should keep aspect, got %f", p.Aspect)
	}
	if p.FovY != 45 {
		t.Errorf("field of view must stay fixed, got %f", p.FovY)
	}
}

func TestVisibleHeight(t *testing.T) {
	p := NewPerspective(90, 100, 100, 0.1, 1000, 500)
	// tan(45deg) = 1, so height = 2 * d
	if h := p.VisibleHeight(10); math.Abs(h-20) > 1e-9 {
		t.Errorf("expected 20, got %f", h)
	}
}

func TestProjectDepth(t *testing.T) {
	v := NewViewport(1000, 500, 1)

	// At z == W the scale is 1
	sx, sy, scale := ProjectDepth(v, 100, -50, 1000)
	if scale != 1 || sx != 600 || sy != 200 {
		t.Errorf("expected (600, 200, 1), got (%f, %f, %f)", sx, sy, scale)
	}

	// Halving z doubles the scale
	_, _, scale = ProjectDepth(v, 0, 0, 500)
	if scale != 2 {
		t.Errorf("expected scale 2, got %f", scale)
	}
}
