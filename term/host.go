package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/config"
	"github.com/pthm-cable/festive/countdown"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/motion"
	"github.com/pthm-cable/festive/page"
	"github.com/pthm-cable/festive/surface"
	"github.com/pthm-cable/festive/telemetry"
)

// Options configures a terminal run.
type Options struct {
	Seed int64

	// MaxFrames stops the run after N frames (0 = unlimited)
	MaxFrames int

	// Perf receives per-component timings; nil disables them
	Perf *telemetry.PerfCollector

	// OnFrame runs after every composite, on the frame goroutine
	OnFrame func()
}

var gold = surface.Color{R: 255, G: 215, B: 0}

// Host runs a page on a tcell screen. Frames come from a fixed-rate ticker;
// screen events are posted to the ticker goroutine, so components only ever
// run on one goroutine.
type Host struct {
	cfg    *config.Config
	opts   Options
	screen tcell.Screen
	comp   *Compositor
	ticker *frame.Ticker
	bus    *input.Bus
	page   *page.Page
	mouse  Mouse

	cancel context.CancelFunc
	handle frame.Handle
	frames int
	paused bool
}

// NewHost mounts the configured page on screen, which must be initialised.
func NewHost(screen tcell.Screen, cfg *config.Config, policy motion.Policy, opts Options) (*Host, error) {
	ticker, ok := frame.Resolve(false).(*frame.Ticker)
	if !ok {
		return nil, fmt.Errorf("terminal backend needs a timer scheduler")
	}

	h := &Host{
		cfg:    cfg,
		opts:   opts,
		screen: screen,
		comp:   NewCompositor(screen),
		ticker: ticker,
		bus:    input.NewBus(),
	}

	w, ht := h.comp.Size()
	deps := page.Deps{
		Sched:  ticker,
		Bus:    h.bus,
		Policy: policy,
		View:   camera.NewViewport(w, ht, 1),
		Rng:    rand.New(rand.NewSource(opts.Seed)),
		Surfaces: func(string) surface.Factory {
			return h.comp.Factory()
		},
	}
	if opts.Perf != nil {
		deps.Recorder = opts.Perf
	}

	p, err := page.New(cfg.Page, cfg, deps)
	if err != nil {
		return nil, err
	}
	h.page = p
	p.Mount()

	slog.Info("terminal started", "page", cfg.Page, "w", w, "h", ht, "layers", len(p.Mounted()))
	return h, nil
}

// Run pumps screen events and frames until ctx is cancelled, Escape or q is
// pressed, or the frame limit is reached. The page is torn down before it
// returns.
func (h *Host) Run(ctx context.Context) error {
	ctx, h.cancel = context.WithCancel(ctx)
	defer h.cancel()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					h.ticker.Post(h.cancel)
					return
				}
				h.ticker.Post(func() { h.handleEvent(ev) })
			}
		}
	}()

	if h.opts.Perf != nil {
		h.opts.Perf.StartFrame()
	}
	h.rearm()

	err := h.ticker.Run(ctx)
	h.ticker.Cancel(h.handle)
	h.page.Teardown()
	slog.Info("terminal stopped", "frames", h.frames)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// rearm moves the composite to the back of the queue so it runs after every
// component frame of the same flush.
func (h *Host) rearm() {
	h.ticker.Cancel(h.handle)
	h.handle = h.ticker.Request(h.composite)
}

// composite re-arms itself after the components have re-armed theirs. Anything
// that restarts components must call rearm to keep that order.
func (h *Host) composite(time.Duration) {
	start := time.Now()
	if h.cfg.Page == page.Countdown {
		parts := countdown.Remaining(time.Now(), h.cfg.Derived.Target)
		_, rows := h.screen.Size()
		text := parts.String()
		if parts.Complete {
			text = "Happy New Year!"
		}
		h.comp.Label(rows/2, text, gold)
	}
	if h.paused {
		h.comp.Label(0, "PAUSED", gold)
	}
	h.comp.Composite()

	if perf := h.opts.Perf; perf != nil {
		perf.Record("host.composite", time.Since(start))
		perf.EndFrame()
		perf.StartFrame()
	}
	if h.opts.OnFrame != nil {
		h.opts.OnFrame()
	}

	h.frames++
	if h.opts.MaxFrames > 0 && h.frames >= h.opts.MaxFrames {
		h.cancel()
		return
	}
	h.handle = h.ticker.Request(h.composite)
}

func (h *Host) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		w, ht := h.comp.Size()
		h.bus.Publish(input.Resized(w, ht))
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			h.cancel()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			h.cancel()
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			h.paused = !h.paused
			if h.paused {
				h.page.Pause()
			} else {
				h.page.Resume()
				h.rearm()
			}
		}
	case *tcell.EventMouse:
		for _, pe := range h.mouse.Translate(ev) {
			h.bus.Publish(pe)
		}
	}
}

// Frames returns the number of composited frames.
func (h *Host) Frames() int {
	return h.frames
}

// Page returns the mounted page.
func (h *Host) Page() *page.Page {
	return h.page
}
