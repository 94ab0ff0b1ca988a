package telemetry

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Phase suffixes recorded by every animated component.
const (
	PhaseUpdate = "update"
	PhaseDraw   = "draw"
	PhaseRender = "render"
)

// Recorder receives phase timings. Components hold one optionally; a nil
// Recorder disables timing.
type Recorder interface {
	Record(phase string, d time.Duration)
}

// Since records the time elapsed from start under component.phase.
// A nil recorder is ignored.
func Since(r Recorder, component, phase string, start time.Time) {
	if r == nil {
		return
	}
	r.Record(component+"."+phase, time.Since(start))
}

// PerfSample holds timing data for a single host frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame and per-component phase timings over a rolling
// window. Record may be called from any component between StartFrame and
// EndFrame.
type PerfCollector struct {
	mu sync.Mutex

	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	frames        int64
	currentPhases map[string]time.Duration
	frameStart    time.Time

	// Wall-clock interval between EndFrame calls
	lastFrameEnd time.Time
	interval     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames
// (60 is one second at the default rate).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a host frame.
func (p *PerfCollector) StartFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
}

// Record adds d to the named phase of the current frame.
func (p *PerfCollector) Record(phase string, d time.Duration) {
	p.mu.Lock()
	p.currentPhases[phase] += d
	p.mu.Unlock()
}

// EndFrame finishes the current frame and stores the sample.
func (p *PerfCollector) EndFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.frames++

	if !p.lastFrameEnd.IsZero() {
		p.interval = now.Sub(p.lastFrameEnd)
	}
	p.lastFrameEnd = now
}

// Frames returns the number of frames recorded since creation.
func (p *PerfCollector) Frames() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// PerfStats holds aggregated statistics over the window.
type PerfStats struct {
	Frames int64

	// Work time of a whole frame
	Frame Summary

	// Per-phase summaries, sorted by name
	Phases []PhaseSummary

	// Interval between frames
	Interval time.Duration
	FPS      float64
}

// PhaseSummary is the Summary of one phase plus its share of frame time.
type PhaseSummary struct {
	Name string
	Summary
	Pct float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := PerfStats{Frames: p.frames, Interval: p.interval}
	if p.interval > 0 {
		out.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.sampleCount == 0 {
		return out
	}

	frameTimes := make([]float64, 0, p.sampleCount)
	phaseTimes := make(map[string][]float64)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		frameTimes = append(frameTimes, float64(s.FrameDuration))
		for name, d := range s.Phases {
			phaseTimes[name] = append(phaseTimes[name], float64(d))
		}
	}
	out.Frame = Summarize(frameTimes)

	names := make([]string, 0, len(phaseTimes))
	for name := range phaseTimes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		// A phase missing from a frame took no time in it
		vals := phaseTimes[name]
		for len(vals) < p.sampleCount {
			vals = append(vals, 0)
		}
		ps := PhaseSummary{Name: name, Summary: Summarize(vals)}
		if out.Frame.Mean > 0 {
			ps.Pct = float64(ps.Mean) / float64(out.Frame.Mean) * 100
		}
		out.Phases = append(out.Phases, ps)
	}
	return out
}

// Phase returns the summary for name, if present.
func (s PerfStats) Phase(name string) (PhaseSummary, bool) {
	for _, ps := range s.Phases {
		if ps.Name == name {
			return ps, true
		}
	}
	return PhaseSummary{}, false
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("frames", s.Frames),
		slog.Int64("avg_frame_us", s.Frame.Mean.Microseconds()),
		slog.Int64("p95_frame_us", s.Frame.P95.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ps := range s.Phases {
		if ps.Pct > 0.1 {
			attrs = append(attrs, slog.Float64(ps.Name+"_pct", float64(int(ps.Pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one CSV line: a phase (or the whole frame) at a window end.
type PerfRow struct {
	Frame    int64   `csv:"frame"`
	Phase    string  `csv:"phase"`
	AvgUS    float64 `csv:"avg_us"`
	P50US    float64 `csv:"p50_us"`
	P95US    float64 `csv:"p95_us"`
	StdDevUS float64 `csv:"stddev_us"`
	Pct      float64 `csv:"pct"`
	FPS      float64 `csv:"fps"`
}

// FramePhase labels the whole-frame row in CSV output.
const FramePhase = "frame"

// ToCSV flattens the stats into rows, whole frame first.
func (s PerfStats) ToCSV() []PerfRow {
	rows := make([]PerfRow, 0, len(s.Phases)+1)
	rows = append(rows, s.Frame.row(s.Frames, FramePhase, 100, s.FPS))
	for _, ps := range s.Phases {
		rows = append(rows, ps.Summary.row(s.Frames, ps.Name, ps.Pct, s.FPS))
	}
	return rows
}

func (m Summary) row(frame int64, phase string, pct, fps float64) PerfRow {
	us := func(d time.Duration) float64 { return float64(d) / float64(time.Microsecond) }
	return PerfRow{
		Frame:    frame,
		Phase:    phase,
		AvgUS:    us(m.Mean),
		P50US:    us(m.P50),
		P95US:    us(m.P95),
		StdDevUS: us(m.StdDev),
		Pct:      pct,
		FPS:      fps,
	}
}
