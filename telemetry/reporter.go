package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/festive/config"
)

// Reporter owns frame timing for a run: the collector, periodic logging and
// the optional CSV output.
type Reporter struct {
	Perf *PerfCollector

	output   *OutputManager
	logStats bool
	interval time.Duration
	lastLog  time.Time
}

// NewReporter creates a reporter. An empty outputDir disables file output;
// failing to create it is logged and the run continues without files.
func NewReporter(cfg *config.Config, logStats bool, outputDir string) *Reporter {
	r := &Reporter{
		Perf:     NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats: logStats,
		interval: cfg.Derived.LogInterval,
		lastLog:  time.Now(),
	}

	out, err := NewOutputManager(outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "dir", outputDir, "error", err)
	}
	if out != nil {
		if err := out.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
		slog.Info("writing telemetry", "dir", out.Dir())
	}
	r.output = out
	return r
}

// Flush logs and writes the window stats once per interval.
func (r *Reporter) Flush() {
	if r.interval <= 0 || time.Since(r.lastLog) < r.interval {
		return
	}
	r.lastLog = time.Now()

	ps := r.Perf.Stats()
	if r.logStats {
		slog.Info("perf", "stats", ps)
	}
	if err := r.output.WritePerf(ps); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Close flushes and closes the output files.
func (r *Reporter) Close() {
	if err := r.output.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
	}
}
