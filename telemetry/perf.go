package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one display frame.
const (
	PhaseInput    = "input"
	PhaseSimulate = "simulate"
	PhaseDraw     = "draw"
	PhasePresent  = "present"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks per-phase frame cost over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
	now           func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	if p == nil {
		return
	}
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	if p == nil {
		return
	}
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameCost time.Duration
	MaxFrameCost time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame cost
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil || p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total, maxCost time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if s.FrameDuration > maxCost {
			maxCost = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	return PerfStats{
		AvgFrameCost: avg,
		MaxFrameCost: maxCost,
		PhaseAvg:     phaseAvg,
		PhasePct:     phasePct,
	}
}

// PerfStatsCSV is the flattened CSV form of PerfStats.
type PerfStatsCSV struct {
	WindowEnd  uint64 `csv:"frame_end"`
	AvgFrameUS int64  `csv:"avg_frame_us"`
	MaxFrameUS int64  `csv:"max_frame_us"`
	InputUS    int64  `csv:"input_us"`
	SimulateUS int64  `csv:"simulate_us"`
	DrawUS     int64  `csv:"draw_us"`
	PresentUS  int64  `csv:"present_us"`
}

// ToCSV flattens the stats for the frame that closed the window.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:  windowEnd,
		AvgFrameUS: s.AvgFrameCost.Microseconds(),
		MaxFrameUS: s.MaxFrameCost.Microseconds(),
		InputUS:    s.PhaseAvg[PhaseInput].Microseconds(),
		SimulateUS: s.PhaseAvg[PhaseSimulate].Microseconds(),
		DrawUS:     s.PhaseAvg[PhaseDraw].Microseconds(),
		PresentUS:  s.PhaseAvg[PhasePresent].Microseconds(),
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameCost.Microseconds(),
		"max_frame_us", s.MaxFrameCost.Microseconds(),
	}
	for _, phase := range []string{PhaseInput, PhaseSimulate, PhaseDraw, PhasePresent} {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, phase+"_pct", int(pct))
		}
	}
	slog.Info("perf", attrs...)
}
