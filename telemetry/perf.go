package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for a layout run.
const (
	PhasePrepare  = "prepare"
	PhaseSolve    = "solve"
	PhaseScene    = "scene"
	PhaseCoverage = "coverage"
	PhaseOutput   = "output"
)

// Phases lists the run phases in execution order.
var Phases = []string{PhasePrepare, PhaseSolve, PhaseScene, PhaseCoverage, PhaseOutput}

// PerfCollector times the phases of one layout run.
type PerfCollector struct {
	phases     map[string]time.Duration
	runStart   time.Time
	phaseStart time.Time
	lastPhase  string
	total      time.Duration
	now        func() time.Time
}

// NewPerfCollector creates a new performance collector.
func NewPerfCollector() *PerfCollector {
	return &PerfCollector{
		phases: make(map[string]time.Duration),
		now:    time.Now,
	}
}

// Start begins timing a run.
func (p *PerfCollector) Start() {
	p.runStart = p.now()
	p.phases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// End finishes timing the run.
func (p *PerfCollector) End() {
	now := p.now()
	if p.lastPhase != "" {
		p.phases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}
	p.total = now.Sub(p.runStart)
}

// PerfStats holds the timing of a finished run.
type PerfStats struct {
	Total    time.Duration
	PhaseDur map[string]time.Duration
	PhasePct map[string]float64 // share of Total, in percent
}

// Stats returns the timing of the last finished run.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Total:    p.total,
		PhaseDur: make(map[string]time.Duration, len(p.phases)),
		PhasePct: make(map[string]float64, len(p.phases)),
	}
	for phase, d := range p.phases {
		s.PhaseDur[phase] = d
		if p.total > 0 {
			s.PhasePct[phase] = float64(d) / float64(p.total) * 100
		}
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{"total_us", s.Total.Microseconds()}
	for _, phase := range Phases {
		if d, ok := s.PhaseDur[phase]; ok {
			attrs = append(attrs, phase+"_us", d.Microseconds())
		}
	}
	slog.Info("perf", attrs...)
}

// PerfRecord is one row of perf.csv.
type PerfRecord struct {
	Phase      string  `csv:"phase"`
	DurationUS int64   `csv:"duration_us"`
	Pct        float64 `csv:"pct"`
}

// ToCSV converts PerfStats to rows in phase order, followed by the total.
func (s PerfStats) ToCSV() []PerfRecord {
	var out []PerfRecord
	for _, phase := range Phases {
		if d, ok := s.PhaseDur[phase]; ok {
			out = append(out, PerfRecord{Phase: phase, DurationUS: d.Microseconds(), Pct: s.PhasePct[phase]})
		}
	}
	return append(out, PerfRecord{Phase: "total", DurationUS: s.Total.Microseconds(), Pct: 100})
}
