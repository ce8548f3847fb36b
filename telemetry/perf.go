package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseEvents    = "events"
	PhaseEffect    = "effect"
	PhaseHUD       = "hud"
	PhasePresent   = "present"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseEvents, PhaseEffect, PhaseHUD, PhasePresent, PhaseTelemetry}

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []FrameSample
	writeIndex  int
	sampleCount int
	total       uint64

	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]FrameSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame closes the running phase and records the frame.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}
	p.Record(FrameSample{Duration: now.Sub(p.frameStart), Phases: p.currentPhases})
}

// Record adds a finished sample to the window, evicting the oldest.
func (p *PerfCollector) Record(s FrameSample) {
	p.samples[p.writeIndex] = s
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.total++
}

// Total returns how many frames were ever recorded.
func (p *PerfCollector) Total() uint64 {
	return p.total
}

// PerfStats holds aggregated frame statistics for the current window.
type PerfStats struct {
	Frames uint64 // frames recorded when the stats were taken
	Window int    // samples the stats cover

	AvgFrame time.Duration
	StdFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	P95Frame time.Duration
	FPS      float64

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
}

// Stats computes statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Frames:   p.total,
		Window:   p.sampleCount,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return stats
	}

	durs := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durs[i] = float64(s.Duration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	mean := stat.Mean(durs, nil)
	var std float64
	if len(durs) > 1 {
		std = stat.StdDev(durs, nil)
	}

	sort.Float64s(durs)
	stats.AvgFrame = time.Duration(mean)
	stats.StdFrame = time.Duration(std)
	stats.MinFrame = time.Duration(floats.Min(durs))
	stats.MaxFrame = time.Duration(floats.Max(durs))
	stats.P95Frame = time.Duration(stat.Quantile(0.95, stat.Empirical, durs, nil))
	if mean > 0 {
		stats.FPS = float64(time.Second) / mean
	}

	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if mean > 0 {
			stats.PhasePct[phase] = float64(avg) / mean * 100
		}
	}

	return stats
}

// LogStats logs the statistics at info level.
func (s PerfStats) LogStats() {
	attrs := []any{
		"frames", s.Frames,
		"avg_frame_us", s.AvgFrame.Microseconds(),
		"p95_frame_us", s.P95Frame.Microseconds(),
		"max_frame_us", s.MaxFrame.Microseconds(),
		"fps", int(s.FPS),
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Uint64("frames", s.Frames),
		slog.Int("window", s.Window),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("std_frame_us", s.StdFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Float64("fps", s.FPS),
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of frames.csv.
type PerfStatsCSV struct {
	Frames       uint64  `csv:"frames"`
	ElapsedSec   float64 `csv:"elapsed_sec"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	StdFrameUS   int64   `csv:"std_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	P95FrameUS   int64   `csv:"p95_frame_us"`
	FPS          float64 `csv:"fps"`
	EventsPct    float64 `csv:"events_pct"`
	EffectPct    float64 `csv:"effect_pct"`
	HUDPct       float64 `csv:"hud_pct"`
	PresentPct   float64 `csv:"present_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the statistics into a CSV row.
func (s PerfStats) ToCSV(elapsedSec float64) PerfStatsCSV {
	return PerfStatsCSV{
		Frames:       s.Frames,
		ElapsedSec:   elapsedSec,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		StdFrameUS:   s.StdFrame.Microseconds(),
		MinFrameUS:   s.MinFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		P95FrameUS:   s.P95Frame.Microseconds(),
		FPS:          s.FPS,
		EventsPct:    s.PhasePct[PhaseEvents],
		EffectPct:    s.PhasePct[PhaseEffect],
		HUDPct:       s.PhasePct[PhaseHUD],
		PresentPct:   s.PhasePct[PhasePresent],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
