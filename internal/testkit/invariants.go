package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"amqpspec/internal/index"
	"amqpspec/internal/schema"
	"amqpspec/internal/source"
)

// CheckPartition verifies that every type declaration lands in exactly one
// of the four category tables and that the tables hold nothing else.
func CheckPartition(m *index.Model) error {
	if m == nil {
		return fmt.Errorf("nil model")
	}
	c := m.Counts()
	sum := c.Primitive + c.Described + c.Enumerated + c.Restricted
	if sum != len(m.Decls()) {
		return fmt.Errorf("category tables hold %d types, %d declared", sum, len(m.Decls()))
	}

	seen := make(map[schema.Decl]schema.Kind, sum)
	claim := func(d schema.Decl, k schema.Kind) error {
		if prev, ok := seen[d]; ok {
			return fmt.Errorf("%s is both %s and %s", d.Head().Name, prev, k)
		}
		if d.Kind() != k {
			return fmt.Errorf("%s filed as %s but is %s", d.Head().Name, k, d.Kind())
		}
		seen[d] = k
		return nil
	}
	for _, p := range m.Primitives() {
		if err := claim(p, schema.KindPrimitive); err != nil {
			return err
		}
	}
	for _, d := range m.Described() {
		if err := claim(d.Described, schema.KindDescribed); err != nil {
			return err
		}
	}
	for _, e := range m.Enumerated() {
		if err := claim(e, schema.KindEnumerated); err != nil {
			return err
		}
	}
	for _, r := range m.Restricted() {
		if err := claim(r, schema.KindRestricted); err != nil {
			return err
		}
	}
	for _, d := range m.Decls() {
		if _, ok := seen[d]; !ok {
			return fmt.Errorf("%s is in no category table", d.Head().Name)
		}
	}
	return nil
}

// CheckGrandConsistency verifies that the Grand Index is exactly the union
// of the Type, Field and Enumeration indices.
func CheckGrandConsistency(m *index.Model) error {
	if m == nil {
		return fmt.Errorf("nil model")
	}
	types, fields, enums := m.TypeIndex(), m.FieldIndex(), m.EnumerationIndex()
	if want := types.Len() + fields.Len() + enums.Len(); m.GrandIndex().Len() != want {
		return fmt.Errorf("grand index has %d entries, want %d", m.GrandIndex().Len(), want)
	}

	counts := make(map[index.GrandCategory]map[string]int)
	for k, e := range m.GrandIndex().Entries() {
		if counts[e.Category] == nil {
			counts[e.Category] = make(map[string]int)
		}
		counts[e.Category][k]++
	}
	check := func(cat index.GrandCategory, keys []string, n func(string) int) error {
		for _, k := range keys {
			if got := counts[cat][k]; got != n(k) {
				return fmt.Errorf("grand %s %q: %d entries, want %d", cat, k, got, n(k))
			}
		}
		return nil
	}
	return errors.Join(
		check(index.GrandType, types.Keys(), func(k string) int { return len(types.Get(k)) }),
		check(index.GrandField, fields.Keys(), func(k string) int { return len(fields.Get(k)) }),
		check(index.GrandEnumValue, enums.Keys(), func(k string) int { return len(enums.Get(k)) }),
	)
}

// CheckFieldXrefs verifies that every field whose type is indexed appears
// in the Cross-Reference Index under that type with its owner.
func CheckFieldXrefs(m *index.Model) error {
	if m == nil {
		return fmt.Errorf("nil model")
	}
	x := m.XrefIndex()
	for _, d := range m.Described() {
		for _, f := range d.Fields {
			if f.Type == "" || !x.Has(f.Type) {
				continue
			}
			found := false
			for _, e := range x.Get(f.Type) {
				if e.Category == index.RefField && e.Referrer == d.Name && e.Member == f.Name {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("field %s.%s missing from xref %q", d.Name, f.Name, f.Type)
			}
		}
	}
	return nil
}

// CheckSpans verifies that every declaration span is non-empty and lies
// within its document's content.
func CheckSpans(m *index.Model, fs *source.FileSet) error {
	if m == nil || fs == nil {
		return fmt.Errorf("nil model or file set")
	}
	for _, d := range m.Decls() {
		h := d.Head()
		sp := h.Loc.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("%s: empty span %v", h.Name, sp)
		}
		f := fs.Get(sp.File)
		if f == nil {
			return fmt.Errorf("%s: span points to unknown file %d", h.Name, sp.File)
		}
		size, err := safecast.Conv[uint32](len(f.Content))
		if err != nil {
			return fmt.Errorf("len content overflow: %w", err)
		}
		if sp.End > size {
			return fmt.Errorf("%s: span end beyond content: %d > %d", h.Name, sp.End, size)
		}
	}
	return nil
}

// CheckAll runs every model invariant and joins the failures.
func CheckAll(m *index.Model, fs *source.FileSet) error {
	return errors.Join(
		CheckPartition(m),
		CheckGrandConsistency(m),
		CheckFieldXrefs(m),
		CheckSpans(m, fs),
	)
}
