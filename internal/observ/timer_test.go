package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "5 documents")
	err := tm.Track("xref", func() (string, error) { return "", errors.New("boom") })
	if err == nil {
		t.Fatal("Track must return fn's error")
	}

	rep := tm.Report()
	if len(rep.Phases) != 2 || tm.Len() != 2 {
		t.Fatalf("expected 2 phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Note != "5 documents" || rep.Phases[1].Note != "failed" {
		t.Fatalf("unexpected notes %+v", rep.Phases)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 5 documents", "total"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if tm.Len() != 0 || len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer must record nothing")
	}
}

func TestEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "ignored")
	if tm.Len() != 0 {
		t.Fatal("unexpected phase")
	}
}
