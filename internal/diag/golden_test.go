package diag

import (
	"bytes"
	"strings"
	"testing"

	"amqpspec/internal/source"
)

func sampleDiagnostics(t *testing.T) (*source.FileSet, []*Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	doc := fs.Add("/workspace/protocol/messaging.xml", []byte("<a>\n<b/>\n"), 0)

	return fs, []*Diagnostic{
		{
			Severity: SevWarning,
			Code:     DclDuplicateChoice,
			Message:  "another",
			Primary:  source.Span{File: doc, Start: 4, End: 8},
		},
		{
			Severity: SevError,
			Code:     IdxDuplicateName,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: doc, Start: 0, End: 3},
			Notes: []Note{
				{Span: source.Span{File: doc, Start: 4, End: 5}, Msg: "declared here"},
			},
		},
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs, diags := sampleDiagnostics(t)

	expected := "error IDX3003 protocol/messaging.xml:1:1 first line second\n" +
		"warning DCL2005 protocol/messaging.xml:2:1 another\n" +
		"note IDX3003 protocol/messaging.xml:2:1 declared here"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	if got := FormatGoldenDiagnostics(nil, source.NewFileSet(), true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestWritePrettyPlain(t *testing.T) {
	fs, diags := sampleDiagnostics(t)

	var buf bytes.Buffer
	if err := WritePretty(&buf, diags, fs, false); err != nil {
		t.Fatalf("WritePretty: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "protocol/messaging.xml:1:1: error [IDX3003] first line second" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}
