package index

import (
	"amqpspec/internal/diag"
	"amqpspec/internal/schema"
)

// indices fills the Type, Field and Enumeration indices by direct
// insertion.
func (b *builder) indices() (string, error) {
	types := b.m.types
	for _, n := range b.nodes {
		if n.Constant != nil {
			types.add(n.Constant.Name, TypeEntry{Loc: n.Constant.Loc, Kind: NameConstant})
			continue
		}
		h := n.Decl.Head()
		types.add(h.Name, TypeEntry{Loc: h.Loc, Kind: NameType, Category: n.Decl.Kind()})
	}
	for _, p := range b.m.primitives {
		for _, enc := range p.Encodings {
			loc := p.Loc
			loc.Span = enc.Span
			types.add(enc.FullName(p.Name), TypeEntry{Loc: loc, Kind: NameEncoding})
		}
	}
	for _, c := range b.m.caps {
		types.add(c.Name, TypeEntry{Loc: c.Providers[0].Head().Loc, Kind: NameCapability})
	}

	for _, d := range b.described {
		for _, f := range d.Fields {
			loc := d.Loc
			loc.Span = f.Span
			b.m.fields.add(f.Name, MemberEntry{Loc: loc, Owner: d.Name, Span: f.Span})
		}
	}

	for _, e := range b.enumerated {
		for _, c := range e.Choices {
			loc := e.Loc
			loc.Span = c.Span
			b.reportSharedChoice(c, e)
			b.m.enums.add(c.Name, MemberEntry{Loc: loc, Owner: e.Name, Span: c.Span})
		}
	}

	return notef("%d type, %d field, %d enumeration entries",
		types.Len(), b.m.fields.Len(), b.m.enums.Len()), nil
}

// reportSharedChoice notes a choice name already owned by another type.
// Both entries are kept.
func (b *builder) reportSharedChoice(c schema.Choice, owner *schema.Enumerated) {
	prev := b.m.enums.Get(c.Name)
	if len(prev) == 0 {
		return
	}
	for _, p := range prev {
		if p.Owner == owner.Name {
			return
		}
	}
	diag.ReportInfo(b.rep, diag.DclDuplicateChoice, c.Span,
		"choice "+c.Name+" of "+owner.Name+" is also a choice of "+prev[0].Owner).
		WithNote(prev[0].Span, "other choice declared here").
		Emit()
}

// buildGrand derives the Grand Index from the finished primary indices.
func (b *builder) buildGrand() (string, error) {
	g := b.m.grand
	for k, e := range b.m.types.Entries() {
		g.add(k, GrandEntry{Category: GrandType, Loc: e.Loc, Kind: e.Kind})
	}
	for k, e := range b.m.fields.Entries() {
		g.add(k, GrandEntry{Category: GrandField, Loc: e.Loc, Owner: e.Owner})
	}
	for k, e := range b.m.enums.Entries() {
		g.add(k, GrandEntry{Category: GrandEnumValue, Loc: e.Loc, Owner: e.Owner})
	}
	return notef("%d entries under %d names", g.Len(), g.KeyCount()), nil
}
