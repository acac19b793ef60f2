package report

import (
	"fmt"
	"io"
	"strings"

	"amqpspec/internal/index"
	"amqpspec/internal/schema"
	"amqpspec/internal/source"
)

// Lookup prints every place name is declared, used as a member and
// referenced. It reports false when the name is unknown to every index.
func Lookup(w io.Writer, m *index.Model, fs *source.FileSet, name string, opts Options) (bool, error) {
	p := newPalette(opts.Color)
	var b strings.Builder
	found := false

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		found = true
		b.WriteString(p.header.Render(title))
		b.WriteString("\n")
		for _, l := range lines {
			b.WriteString("  ")
			b.WriteString(truncate(l, opts.Width-2))
			b.WriteString("\n")
		}
	}
	where := func(loc schema.Location) string {
		if fs != nil && fs.Get(loc.Span.File) != nil {
			return loc.String() + " " + p.dim.Render(fs.Position(loc.Span))
		}
		return loc.String()
	}

	var lines []string
	for _, e := range m.TypeIndex().Get(name) {
		kind := e.Kind.String()
		if e.Kind == index.NameType {
			kind = e.Category.String() + " type"
		}
		lines = append(lines, fmt.Sprintf("%s %s", pad(kind, 16), where(e.Loc)))
	}
	section("declared", lines)

	lines = lines[:0]
	for _, e := range m.FieldIndex().Get(name) {
		lines = append(lines, fmt.Sprintf("%s %s", pad("field of "+e.Owner, 32), where(e.Loc)))
	}
	for _, e := range m.EnumerationIndex().Get(name) {
		lines = append(lines, fmt.Sprintf("%s %s", pad("choice of "+e.Owner, 32), where(e.Loc)))
	}
	section("members", lines)

	lines = lines[:0]
	for _, e := range m.XrefIndex().Get(name) {
		who := e.Referrer
		if e.Member != "" {
			who += "." + e.Member
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", pad(e.Category.String(), 11), pad(who, 32), e.Loc))
	}
	section("referenced by", lines)

	lines = lines[:0]
	for _, e := range m.XrefIndex().Get(index.ProvidedKey(name)) {
		lines = append(lines, fmt.Sprintf("%s %s", pad(e.Referrer, 32), e.Loc))
	}
	section("provided by", lines)

	if !found {
		return false, nil
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return true, fmt.Errorf("write lookup: %w", err)
	}
	return true, nil
}
