package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/festive/config"
	"github.com/pthm-cable/festive/motion"
	"github.com/pthm-cable/festive/page"
	"github.com/pthm-cable/festive/telemetry"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(40, 12)
	t.Cleanup(s.Fini)
	return s
}

func TestHostRunsPageToFrameLimit(t *testing.T) {
	tests := []struct {
		page    string
		mounted []string
	}{
		// No image or 3D support in a terminal; those components stay inert
		{page.Countdown, []string{"stars", "snow"}},
		{page.Message, []string{"stars", "parallax", "snow"}},
		{page.Globe, []string{"stars"}},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			cfg, err := config.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}
			cfg.Page = tt.page
			perf := telemetry.NewPerfCollector(10)

			h, err := NewHost(newSimScreen(t), cfg, motion.Static(false), Options{Seed: 3, MaxFrames: 3, Perf: perf})
			if err != nil {
				t.Fatal(err)
			}
			got := h.Page().Mounted()
			if len(got) != len(tt.mounted) {
				t.Fatalf("expected %v, got %v", tt.mounted, got)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.Run(ctx); err != nil {
				t.Fatalf("run: %v", err)
			}
			if h.Frames() != 3 {
				t.Errorf("expected 3 frames, got %d", h.Frames())
			}
			if _, ok := perf.Stats().Phase("host.composite"); !ok {
				t.Error("composite timing not recorded")
			}
		})
	}
}

func TestHostQuitsOnKey(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	screen := newSimScreen(t)
	h, err := NewHost(screen, cfg, motion.Static(true), Options{})
	if err != nil {
		t.Fatal(err)
	}

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("q should stop the host before the deadline")
	}
}

func TestHostCompositesAfterResumedComponents(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Page = page.Message
	perf := telemetry.NewPerfCollector(10)
	h, err := NewHost(newSimScreen(t), cfg, motion.Static(false), Options{Perf: perf})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Page().Teardown()

	perf.StartFrame()
	h.rearm()

	space := tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)
	h.handleEvent(space)
	h.handleEvent(space)

	h.ticker.Flush(h.ticker.Now())
	if h.Frames() != 1 {
		t.Fatalf("expected one composite, got %d", h.Frames())
	}
	// The frame closed by the composite must hold this flush's draws
	if _, ok := perf.Stats().Phase("stars.draw"); !ok {
		t.Error("composite ran before the resumed star field drew")
	}
}
