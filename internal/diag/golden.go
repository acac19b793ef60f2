package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"amqpspec/internal/source"
)

type goldenDiagnostic struct {
	Severity Severity
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
	Note     bool
}

// FormatGoldenDiagnostics renders diagnostics one per line in a stable
// order suitable for golden comparisons. The result is empty when there is
// nothing to report.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	rendered := collect(diags, fs, includeNotes)
	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", label(d), d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WritePretty prints diagnostics for a terminal, coloured by severity when
// useColor is set.
func WritePretty(w io.Writer, diags []*Diagnostic, fs *source.FileSet, useColor bool) error {
	prev := color.NoColor
	color.NoColor = !useColor
	defer func() { color.NoColor = prev }()

	for _, d := range collect(diags, fs, true) {
		sev := severityColor(d).Sprint(label(d))
		loc := color.New(color.Bold).Sprintf("%s:%d:%d", d.Path, d.Line, d.Column)
		if _, err := fmt.Fprintf(w, "%s: %s [%s] %s\n", loc, sev, d.Code, d.Message); err != nil {
			return err
		}
	}
	return nil
}

func collect(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	if fs == nil || len(diags) == 0 {
		return nil
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendDiagnostic(rendered, d, fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Note != dj.Note {
			return !di.Note
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})
	return rendered
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	if loc, ok := resolveSpan(fs, d.Primary); ok {
		out = append(out, goldenDiagnostic{
			Severity: d.Severity,
			Code:     d.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(d.Message),
		})
	}

	if includeNotes {
		for _, note := range d.Notes {
			nloc, ok := resolveSpan(fs, note.Span)
			if !ok {
				continue
			}
			out = append(out, goldenDiagnostic{
				Severity: d.Severity,
				Code:     d.Code.ID(),
				Path:     nloc.Path,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Message:  sanitizeMessage(note.Msg),
				Note:     true,
			})
		}
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (resolvedSpan, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   source.RelativePath(file.Path, fs.BaseDir()),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func label(d goldenDiagnostic) string {
	if d.Note {
		return "note"
	}
	switch d.Severity {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(d goldenDiagnostic) *color.Color {
	if d.Note {
		return color.New(color.FgCyan)
	}
	switch d.Severity {
	case SevError:
		return color.New(color.FgRed, color.Bold)
	case SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgBlue)
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
