package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeDocument, false},
		{LevelDetail, ScopeDocument, true},
		{LevelDetail, ScopeDecl, false},
		{LevelDebug, ScopeDecl, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s/%s: expected %v", tc.level, tc.scope, tc.want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "index", 0)
	pass := Begin(tr, ScopePass, "encodings", root.ID())
	Begin(tr, ScopeDocument, "document:types", pass.ID()).End("")
	pass.WithCount("encodings", 39).End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events (document scope filtered), got %d:\n%s", len(lines), buf.String())
	}

	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "encodings" || ev.Extra["encodings"] != "39" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.ParentID != root.ID() {
		t.Fatalf("expected parent %d, got %d", root.ID(), ev.ParentID)
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	ev := &Event{Seq: 7, Kind: KindSpanEnd, Scope: ScopePass, ParentID: 1, Name: "xref",
		Extra: map[string]string{"kept": "252", "dropped": "0"}}
	got := string(FormatEvent(ev, FormatText))
	want := "[     7]   ← xref {dropped=0, kept=252}\n"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeDecl, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	if snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("unexpected order %s..%s", snap[0].Name, snap[2].Name)
	}

	var buf bytes.Buffer
	n, err := r.Dump(&buf, FormatText, 0)
	if err != nil || n != 3 {
		t.Fatalf("Dump: n=%d err=%v", n, err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}

	tail := r.Tail(2)
	if len(tail) != 2 || tail[0].Name != "d" || tail[1].Name != "e" {
		t.Fatalf("unexpected tail %+v", tail)
	}
	buf.Reset()
	if n, _ := r.Dump(&buf, FormatText, 1); n != 1 || !strings.Contains(buf.String(), "e") {
		t.Fatalf("limited dump wrote %d:\n%s", n, buf.String())
	}
}

func TestMultiTracerAndFindRing(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)

	Begin(m, ScopePass, "classify", 0).End("")
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatal("expected both tracers to receive events")
	}
	if FindRing(m) != ring {
		t.Fatal("FindRing must locate the ring inside a MultiTracer")
	}
	if FindRing(Nop) != nil {
		t.Fatal("Nop has no ring")
	}
}

func TestLogTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLogTracer(zerolog.New(&buf), LevelDetail)
	Begin(tr, ScopeDocument, "document:transport", 0).WithCount("sections", 2).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["message"] != "document:transport" || rec["sections"] != "2" || rec["level"] != "debug" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestLogTracerSortsExtra(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLogTracer(zerolog.New(&buf), LevelPhase)
	Begin(tr, ScopePass, "xref", 0).
		WithCount("kept", 252).WithCount("grand", 341).WithCount("dropped", 0).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %q", buf.String())
	}
	end := lines[1]
	d, g, k := strings.Index(end, `"dropped"`), strings.Index(end, `"grand"`), strings.Index(end, `"kept"`)
	if d < 0 || !(d < g && g < k) {
		t.Fatalf("extra fields out of order: %s", end)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatal("LevelOff must disable tracing")
	}
	sp := Begin(tr, ScopeDriver, "index", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatal("disabled span must be inert")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	sp := Begin(ring, ScopeDriver, "index", 0)
	ctx = WithSpan(ctx, sp)
	if CurrentSpan(ctx) != sp.ID() {
		t.Fatal("span not propagated")
	}
}
