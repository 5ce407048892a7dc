package observ

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerMeasureAndReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	tm.Measure(PhaseLex, func() string { return "3 tokens" })
	idx := tm.Begin(PhaseParse)
	tm.End(idx, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.TotalMS != 2 {
		t.Fatalf("report = %+v", r)
	}
	if r.Phases[0].Note != "3 tokens" {
		t.Fatalf("note = %q", r.Phases[0].Note)
	}
	s := tm.Summary()
	for _, want := range []string{"lex", "// 3 tokens", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary lacks %q:\n%s", want, s)
		}
	}
}

func TestTimerMerge(t *testing.T) {
	a, b := NewTimer(), NewTimer()
	a.now, b.now = fakeClock(time.Millisecond), fakeClock(2*time.Millisecond)
	a.Measure(PhaseLex, func() string { return "" })
	b.Measure(PhaseLex, func() string { return "" })
	b.Measure(PhaseEmit, func() string { return "" })
	a.Merge(b)
	a.Merge(nil)

	phases := a.Phases()
	if len(phases) != 2 || phases[0].Dur != 3*time.Millisecond || phases[1].Name != PhaseEmit {
		t.Fatalf("phases = %+v", phases)
	}
	if NewTimer().Report().Phases != nil {
		t.Fatalf("empty timer must give an empty report")
	}
}
