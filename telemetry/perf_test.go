package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector()
	p.now = fakeClock(time.Millisecond)

	p.Start()                  // t=1
	p.StartPhase(PhasePrepare) // t=2
	p.StartPhase(PhaseSolve)   // t=3
	p.StartPhase(PhaseOutput)  // t=4
	p.End()                    // t=5

	s := p.Stats()
	assert.Equal(t, 4*time.Millisecond, s.Total)
	for _, phase := range []string{PhasePrepare, PhaseSolve, PhaseOutput} {
		assert.Equal(t, time.Millisecond, s.PhaseDur[phase], phase)
		assert.Equal(t, 25.0, s.PhasePct[phase], phase)
	}
	assert.NotContains(t, s.PhaseDur, PhaseScene, "untimed phase reported")
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		Total:    10 * time.Microsecond,
		PhaseDur: map[string]time.Duration{PhaseSolve: 6 * time.Microsecond, PhasePrepare: 4 * time.Microsecond},
		PhasePct: map[string]float64{PhaseSolve: 60, PhasePrepare: 40},
	}

	assert.Equal(t, []PerfRecord{
		{Phase: PhasePrepare, DurationUS: 4, Pct: 40},
		{Phase: PhaseSolve, DurationUS: 6, Pct: 60},
		{Phase: "total", DurationUS: 10, Pct: 100},
	}, s.ToCSV())
}
