package index

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"amqpspec/internal/schema"
)

// WriteText writes a stable, line-oriented rendering of the whole model.
// Two models built from the same documents produce identical output.
func (m *Model) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
	}

	p("# documents\n")
	for _, d := range m.documents {
		p("%s\n", d)
	}

	p("\n# counts\n")
	for _, nc := range m.Counts().Named() {
		p("%-20s %d\n", nc.Name, nc.Value)
	}

	p("\n# encodings by name\n")
	for _, r := range m.encByName {
		p("%-24s %-6s %-10s %d\n", r.FullName, r.Encoding.Code, r.Encoding.Category, r.Encoding.Width)
	}
	p("\n# encodings by code\n")
	for _, r := range m.encByCode {
		p("%-6s %s\n", r.Encoding.Code, r.FullName)
	}

	p("\n# described\n")
	for _, d := range m.described {
		p("%s %s %s %s\n", d.ShortCode, d.LongName(), d.Descriptor.Name, d.Source)
		for _, f := range d.Fields {
			p("  %s %s%s\n", f.Name, f.Type, fieldFlags(f))
		}
	}

	p("\n# enumerated\n")
	for _, e := range m.enumerated {
		p("%s %s\n", e.LongName(), e.Source)
		for _, c := range e.Choices {
			p("  %s = %s\n", c.Name, c.Value)
		}
	}

	p("\n# restricted\n")
	for _, r := range m.restricted {
		p("%s %s\n", r.LongName(), r.Source)
	}

	p("\n# constants\n")
	for _, c := range m.constants {
		p("%s %s %s\n", c.Loc, c.Name, c.Value)
	}

	p("\n# capabilities\n")
	for _, c := range m.caps {
		names := make([]string, len(c.Providers))
		for i, d := range c.Providers {
			names[i] = d.Head().Name
		}
		p("%s: %s\n", c.Name, strings.Join(names, ", "))
	}

	p("\n# type index\n")
	writeIndex(p, m.types, func(e TypeEntry) string {
		if e.Kind == NameType {
			return e.Loc.String() + " " + e.Category.String()
		}
		return e.Loc.String() + " " + e.Kind.String()
	})
	p("\n# field index\n")
	writeIndex(p, m.fields, memberText)
	p("\n# enumeration index\n")
	writeIndex(p, m.enums, memberText)
	p("\n# grand index\n")
	writeIndex(p, m.grand, func(e GrandEntry) string {
		if e.Owner != "" {
			return e.Category.String() + " " + e.Loc.String() + " " + e.Owner
		}
		return e.Category.String() + " " + e.Loc.String() + " " + e.Kind.String()
	})
	p("\n# cross references\n")
	writeIndex(p, m.xref, func(e XrefEntry) string {
		who := e.Referrer
		if e.Member != "" {
			who += "." + e.Member
		}
		return e.Category.String() + " " + who
	})

	return bw.Flush()
}

func writeIndex[E any](p func(string, ...any), ix *Index[E], text func(E) string) {
	for _, k := range ix.SortedKeys() {
		entries := ix.Get(k)
		if len(entries) == 0 {
			continue
		}
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = text(e)
		}
		p("%s: %s\n", k, strings.Join(parts, "; "))
	}
}

func memberText(e MemberEntry) string {
	return e.Loc.String() + " " + e.Owner
}

func fieldFlags(f schema.Field) string {
	var sb strings.Builder
	if f.Mandatory {
		sb.WriteString(" mandatory")
	}
	if f.Multiple {
		sb.WriteString(" multiple")
	}
	if len(f.Requires) > 0 {
		sb.WriteString(" requires=" + strings.Join(f.Requires, ","))
	}
	if f.Default != "" {
		sb.WriteString(" default=" + f.Default)
	}
	return sb.String()
}
