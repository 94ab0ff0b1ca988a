// Package game hosts a page in the raylib window with its per-frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/config"
	"github.com/pthm-cable/festive/countdown"
	"github.com/pthm-cable/festive/frame"
	"github.com/pthm-cable/festive/input"
	"github.com/pthm-cable/festive/motion"
	"github.com/pthm-cable/festive/page"
	"github.com/pthm-cable/festive/renderer"
	"github.com/pthm-cable/festive/surface"
	"github.com/pthm-cable/festive/telemetry"
	"github.com/pthm-cable/festive/ui"
)

// Background is the night sky behind every layer.
var Background = rl.Color{R: 5, G: 8, B: 22, A: 255}

// Game runs one page in the raylib window. The window must be open before
// NewGame and stays owned by the caller.
type Game struct {
	cfg  *config.Config
	opts Options

	queue *frame.Queue
	bus   *input.Bus
	view  camera.Viewport
	page  *page.Page

	// Layers in z-order
	canvases map[string]*renderer.Canvas
	sprite   *renderer.Sprite
	orbs     *renderer.Orbs
	globe    *renderer.GlobeScene

	hud       *ui.CountdownHUD
	perfPanel *ui.PerfPanel
	tuning    *ui.TuningPanel
	showPerf  bool

	pointer  pointerState
	grabbing bool

	stats  *telemetry.Reporter
	frames int
	paused bool
}

// NewGame builds and mounts the configured page.
func NewGame(cfg *config.Config, policy motion.Policy, opts Options) (*Game, error) {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	dpr := cfg.Screen.DPR
	if dpr <= 0 {
		dpr = float64(rl.GetWindowScaleDPI().X)
	}

	sched, ok := frame.Resolve(true).(*frame.Queue)
	if !ok {
		return nil, fmt.Errorf("raylib backend needs a host-paced scheduler")
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		queue:     sched,
		bus:       input.NewBus(),
		view:      camera.NewViewport(w, h, dpr),
		canvases:  make(map[string]*renderer.Canvas),
		hud:       ui.NewCountdownHUD(),
		perfPanel: ui.NewPerfPanel(10, 10),
		tuning:    ui.NewTuningPanel(int32(w)-290, 10, 280),
		stats:     telemetry.NewReporter(cfg, opts.LogStats, opts.OutputDir),
	}

	deps := page.Deps{
		Sched:    g.queue,
		Bus:      g.bus,
		Policy:   policy,
		View:     g.view,
		Rng:      rand.New(rand.NewSource(opts.Seed)),
		Recorder: g.stats.Perf,
		Surfaces: func(layer string) surface.Factory {
			return renderer.CanvasFactory(dpr, func(c *renderer.Canvas) { g.canvases[layer] = c })
		},
	}

	switch cfg.Page {
	case page.Countdown:
		sprite, err := renderer.NewSprite(cfg.Earth.Image, cfg.Earth.Radius, cfg.Derived.Ocean, cfg.Derived.Land)
		if err != nil {
			slog.Warn("earth image unavailable", "error", err)
		} else {
			g.sprite = sprite
			g.placeSprite()
			deps.Earth = sprite
			deps.EarthHit = sprite.Hit
		}
	case page.Globe:
		deps.Globe = renderer.GlobeFactory(globeConfig(cfg), g.view, func(s *renderer.GlobeScene) { g.globe = s })
		deps.GlobeHit = func(x, y float64) bool { return g.globe != nil && g.globe.Hit(x, y) }
	}

	p, err := page.New(cfg.Page, cfg, deps)
	if err != nil {
		return nil, err
	}
	g.page = p

	if p.Parallax != nil {
		layers := p.Parallax.Layers()
		g.orbs = renderer.NewOrbs(renderer.DefaultOrbs(), layers.Offset)
	}
	if p.Spinner != nil {
		p.Spinner.OnGrab(g.setGrabbing)
	}
	if p.Orbit != nil {
		p.Orbit.OnGrab(g.setGrabbing)
	}

	p.Mount()

	for _, tu := range p.Tunables() {
		g.tuning.Add(ui.Slider{
			Label: tu.Label,
			Min:   float32(tu.Min),
			Max:   float32(tu.Max),
			Get:   tu.Get,
			Set:   tu.Set,
		})
	}

	slog.Info("game started",
		"page", cfg.Page,
		"w", w, "h", h, "dpr", dpr,
		"reduced_motion", policy.PrefersReducedMotion(),
		"seed", opts.Seed,
	)
	return g, nil
}

func globeConfig(cfg *config.Config) renderer.GlobeConfig {
	return renderer.GlobeConfig{
		Radius:          cfg.Globe.Radius,
		Segments:        cfg.Globe.Segments,
		FOV:             cfg.Globe.FOV,
		CameraZ:         cfg.Globe.CameraZ,
		AtmosphereScale: cfg.Globe.AtmosphereScale,
		Texture:         cfg.Globe.Texture,
		Ocean:           cfg.Derived.Ocean,
		Land:            cfg.Derived.Land,
	}
}

func (g *Game) placeSprite() {
	if g.sprite != nil {
		cx, cy := g.view.Center()
		g.sprite.SetCenter(cx, cy)
	}
}

func (g *Game) setGrabbing(grabbing bool) {
	g.grabbing = grabbing
}

// Frame runs one host frame: input, every component's scheduled frame, then
// compositing.
func (g *Game) Frame() {
	g.stats.Perf.StartFrame()

	g.handleInput()

	// Components draw into their own targets before the window pass
	g.queue.Flush(g.queue.Now())

	start := time.Now()
	rl.BeginDrawing()
	rl.ClearBackground(Background)
	g.composite()
	g.drawUI()
	rl.EndDrawing()
	g.stats.Perf.Record("host.composite", time.Since(start))

	g.stats.Perf.EndFrame()
	g.stats.Flush()
	g.frames++
}

// Done reports whether the frame limit was reached.
func (g *Game) Done() bool {
	return g.opts.MaxFrames > 0 && g.frames >= g.opts.MaxFrames
}

// Frames returns the number of host frames run.
func (g *Game) Frames() int {
	return g.frames
}

// Page returns the mounted page.
func (g *Game) Page() *page.Page {
	return g.page
}

// Unload tears the page down (cancelling every loop before any GPU resource
// is released) and frees what the host owns.
func (g *Game) Unload() {
	g.page.Teardown()
	if g.sprite != nil {
		g.sprite.Unload()
	}
	g.stats.Close()
	slog.Info("game stopped", "frames", g.frames)
}

func (g *Game) composite() {
	if c := g.canvases[page.LayerStars]; c != nil {
		c.Draw(0, 0)
	}
	if g.orbs != nil {
		g.orbs.Draw(g.view.W, g.view.H)
	}
	if g.sprite != nil {
		g.sprite.Draw()
	}
	if g.globe != nil {
		g.globe.Draw()
	}
	if c := g.canvases[page.LayerSnow]; c != nil {
		c.Draw(0, 0)
	}
}

func (g *Game) drawUI() {
	if g.cfg.Page == page.Countdown {
		parts := countdown.Remaining(time.Now(), g.cfg.Derived.Target)
		y := int32(g.view.H) - 170
		if g.sprite == nil {
			y = int32(g.view.H/2) - 55
		}
		g.hud.Draw(parts, int32(g.view.W), y)
	}
	if g.showPerf {
		g.perfPanel.Draw(g.stats.Perf.Stats())
	}
	g.tuning.Draw()
	if g.paused {
		rl.DrawText("PAUSED", 10, int32(g.view.H)-30, 20, rl.Yellow)
	}
}
