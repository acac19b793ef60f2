package ui

import (
	"strings"
	"testing"

	"amqpspec/internal/index"
)

func TestProgressModelTracksPasses(t *testing.T) {
	m := NewProgressModel("amqp", nil).(*progressModel)
	total := len(index.Passes)

	m.Update(stageMsg(index.Stage{Name: "classify", Index: 1, Total: total}))
	if got := m.passes[0].status; got != statusRunning {
		t.Fatalf("classify status = %q, want running", got)
	}
	m.Update(stageMsg(index.Stage{Name: "classify", Index: 1, Total: total, Done: true, Note: "96 types"}))
	m.Update(stageMsg(index.Stage{Name: "encodings", Index: 2, Total: total}))

	if got, want := m.fraction(), 1.5/float64(total); got != want {
		t.Fatalf("fraction = %v, want %v", got, want)
	}
	view := m.View()
	for _, want := range []string{"amqp", "classify", "96 types", "encodings", "queued"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{failed: true})
	if !m.failed || m.passes[1].status != statusFailed {
		t.Fatalf("running pass not marked failed: %+v", m.passes[1])
	}
	if !strings.Contains(m.View(), "failed: amqp") {
		t.Errorf("header not marked failed:\n%s", m.View())
	}
}

func TestProgressModelIgnoresUnknownStage(t *testing.T) {
	m := NewProgressModel("amqp", nil).(*progressModel)
	m.Update(stageMsg(index.Stage{Name: "bogus", Index: 99}))
	if m.running() != -1 {
		t.Fatal("unknown stage must not start a pass")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a long note here", 8, "a lon..."},
		{"abcdefghijklmnop", 12, "abcdefghi..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.width); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}
