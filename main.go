package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/festive/config"
	"github.com/pthm-cable/festive/game"
	"github.com/pthm-cable/festive/motion"
	"github.com/pthm-cable/festive/telemetry"
	"github.com/pthm-cable/festive/term"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	pageName := flag.String("page", "", "Page to show: countdown, message or globe (empty = use config)")
	backend := flag.String("backend", "", "Backend: raylib or terminal (empty = use config)")
	reduced := flag.String("reduced-motion", "", "Reduced motion: auto, on or off (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output frame timing via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *pageName != "" {
		cfg.Page = *pageName
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *reduced != "" {
		cfg.ReducedMotion.Mode = *reduced
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(2)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	policy := motion.Detect(cfg.ReducedMotion.Mode, os.LookupEnv)

	if cfg.Backend == "terminal" {
		// The screen owns stdout; logs go to stderr
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
		if err := runTerminal(cfg, policy, rngSeed, *logStats, *outputDir, *maxFrames); err != nil {
			slog.Error("terminal backend failed", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, policy, game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		MaxFrames: *maxFrames,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.Done() {
		g.Frame()
	}
}

func runTerminal(cfg *config.Config, policy motion.Policy, seed int64, logStats bool, outputDir string, maxFrames int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	stats := telemetry.NewReporter(cfg, logStats, outputDir)
	defer stats.Close()

	h, err := term.NewHost(screen, cfg, policy, term.Options{
		Seed:      seed,
		MaxFrames: maxFrames,
		Perf:      stats.Perf,
		OnFrame:   stats.Flush,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return h.Run(ctx)
}
