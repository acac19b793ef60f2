package index

import (
	"bytes"
	"strings"
	"testing"

	"amqpspec/internal/observ"
	"amqpspec/internal/trace"
)

func TestIndexOrderAndCounts(t *testing.T) {
	ix := newIndex[int]()
	ix.add("b", 1)
	ix.add("a", 2)
	ix.add("b", 3)
	ix.seed("c")
	ix.seed("a")

	if got := strings.Join(ix.Keys(), ","); got != "b,a,c" {
		t.Fatalf("unexpected insertion order %s", got)
	}
	if got := strings.Join(ix.SortedKeys(), ","); got != "a,b,c" {
		t.Fatalf("unexpected sorted order %s", got)
	}
	if ix.Len() != 3 || ix.KeyCount() != 3 {
		t.Fatalf("Len=%d KeyCount=%d", ix.Len(), ix.KeyCount())
	}
	if !ix.Has("c") || len(ix.Get("c")) != 0 || ix.Has("d") {
		t.Fatal("seeded key must exist without entries")
	}

	var seen []int
	for _, v := range ix.Entries() {
		seen = append(seen, v)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 3 || seen[2] != 2 {
		t.Fatalf("unexpected entry order %v", seen)
	}
}

func TestIndexEntriesStopsEarly(t *testing.T) {
	ix := newIndex[string]()
	ix.add("k", "x")
	ix.add("k", "y")
	n := 0
	for range ix.Entries() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected iteration to stop, got %d", n)
	}
}

func TestBuildReportsPasses(t *testing.T) {
	var stages []Stage
	timer := observ.NewTimer()
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)

	buildFixture(t, Options{
		Timer:    timer,
		Tracer:   tr,
		Progress: func(s Stage) { stages = append(stages, s) },
	})

	if len(stages) != 2*len(Passes) {
		t.Fatalf("expected %d progress calls, got %d", 2*len(Passes), len(stages))
	}
	last := stages[len(stages)-1]
	if last.Name != "xref" || !last.Done || last.Note != "252 references, 0 dropped" {
		t.Fatalf("unexpected last stage %+v", last)
	}
	if timer.Len() != len(Passes) {
		t.Fatalf("expected %d timed phases, got %d", len(Passes), timer.Len())
	}
	if timer.Report().Phases[0].Note != "96 types, 13 constants, 14 capabilities" {
		t.Fatalf("unexpected classify note %q", timer.Report().Phases[0].Note)
	}
	out := buf.String()
	for _, want := range []string{"→ build", "← encodings (39 encodings)", "← build {grand=341, xref=252}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "document:") {
		t.Fatal("document spans must be filtered at phase level")
	}
}

func TestCountsNamed(t *testing.T) {
	c := Counts{Constants: 13, Xref: 252}
	if v, ok := c.Get("xref"); !ok || v != 252 {
		t.Fatalf("Get(xref) = %d, %v", v, ok)
	}
	if _, ok := c.Get("bogus"); ok {
		t.Fatal("unknown name must not resolve")
	}
	if len(c.Named()) != 13 {
		t.Fatalf("expected 13 named counts, got %d", len(c.Named()))
	}
}

func TestPlural(t *testing.T) {
	cases := []struct {
		n          int
		what, many string
		want       string
	}{
		{1, "capability", "capabilities", "1 capability"},
		{14, "capability", "capabilities", "14 capabilities"},
		{0, "type", "", "0 types"},
		{39, "encoding", "", "39 encodings"},
	}
	for _, c := range cases {
		if got := plural(c.n, c.what, c.many); got != c.want {
			t.Errorf("plural(%d, %q, %q) = %q, want %q", c.n, c.what, c.many, got, c.want)
		}
	}
}
