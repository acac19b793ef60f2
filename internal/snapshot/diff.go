package snapshot

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// CountDelta is a count that differs between two snapshots.
type CountDelta struct {
	Name string
	Old  int
	New  int
}

// TableDrift lists the keys of one table that were added, removed or
// changed between two snapshots.
type TableDrift struct {
	Table   string
	Added   []string
	Removed []string
	Changed []string
}

func (t TableDrift) empty() bool {
	return len(t.Added) == 0 && len(t.Removed) == 0 && len(t.Changed) == 0
}

// Drift is the difference between two snapshots.
type Drift struct {
	SourceChanged bool
	Counts        []CountDelta
	Tables        []TableDrift
}

// Empty reports whether the snapshots describe the same model.
func (d *Drift) Empty() bool {
	return len(d.Counts) == 0 && len(d.Tables) == 0
}

// Diff compares old against cur. Tables are keyed by name; an entry is
// changed when its encoded content differs.
func Diff(old, cur *Snapshot) *Drift {
	d := &Drift{SourceChanged: old.SourceDigest != cur.SourceDigest}

	names := make([]string, 0, len(cur.Counts))
	seen := make(map[string]bool)
	for _, c := range old.Counts {
		names = append(names, c.Name)
		seen[c.Name] = true
	}
	for _, c := range cur.Counts {
		if !seen[c.Name] {
			names = append(names, c.Name)
		}
	}
	for _, n := range names {
		o, nv := old.Count(n), cur.Count(n)
		if o != nv {
			d.Counts = append(d.Counts, CountDelta{Name: n, Old: o, New: nv})
		}
	}

	d.add(diffTable("encodings", old.Encodings, cur.Encodings, func(e Encoding) string { return e.Name }))
	d.add(diffTable("described", old.Described, cur.Described, func(e Described) string { return e.Name }))
	d.add(diffTable("enumerated", old.Enumerated, cur.Enumerated, func(e Enumerated) string { return e.Name }))
	d.add(diffTable("restricted", old.Restricted, cur.Restricted, func(e Restricted) string { return e.Name }))
	d.add(diffTable("constants", old.Constants, cur.Constants, func(e Constant) string { return e.Name }))
	d.add(diffTable("capabilities", old.Capabilities, cur.Capabilities, func(e Capability) string { return e.Name }))
	d.add(diffTable("xref", old.Xref, cur.Xref, func(e XrefKey) string { return e.Name }))
	return d
}

func (d *Drift) add(t TableDrift) {
	if !t.empty() {
		d.Tables = append(d.Tables, t)
	}
}

func diffTable[T any](table string, old, cur []T, key func(T) string) TableDrift {
	t := TableDrift{Table: table}
	before := make(map[string]string, len(old))
	for _, e := range old {
		before[key(e)] = fmt.Sprintf("%#v", e)
	}
	after := make(map[string]bool, len(cur))
	for _, e := range cur {
		k := key(e)
		after[k] = true
		prev, ok := before[k]
		switch {
		case !ok:
			t.Added = append(t.Added, k)
		case prev != fmt.Sprintf("%#v", e):
			t.Changed = append(t.Changed, k)
		}
	}
	for k := range before {
		if !after[k] {
			t.Removed = append(t.Removed, k)
		}
	}
	slices.Sort(t.Added)
	slices.Sort(t.Removed)
	slices.Sort(t.Changed)
	t.Changed = slices.Compact(t.Changed)
	return t
}

// WriteText prints d in a line-oriented form.
func (d *Drift) WriteText(w io.Writer) error {
	var b strings.Builder
	if d.SourceChanged {
		b.WriteString("source digest changed\n")
	}
	if d.Empty() {
		b.WriteString("no drift\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	for _, c := range d.Counts {
		fmt.Fprintf(&b, "count %s: %d -> %d\n", c.Name, c.Old, c.New)
	}
	for _, t := range d.Tables {
		for _, k := range t.Added {
			fmt.Fprintf(&b, "+ %s %s\n", t.Table, k)
		}
		for _, k := range t.Removed {
			fmt.Fprintf(&b, "- %s %s\n", t.Table, k)
		}
		for _, k := range t.Changed {
			fmt.Fprintf(&b, "~ %s %s\n", t.Table, k)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
