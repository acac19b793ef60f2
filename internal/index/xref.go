package index

import (
	"fmt"

	"amqpspec/internal/diag"
	"amqpspec/internal/source"
	"amqpspec/internal/trace"
)

// crossReference files every reference under the name it points at.
// Resolvable names are the Type Index keys that name something other than
// a constant, the wildcard and one "<capability>,PROVIDED" key per
// capability. Anything else is dropped and counted.
func (b *builder) crossReference() (string, error) {
	x := b.m.xref
	for _, k := range b.m.types.Keys() {
		if resolvable(b.m.types.Get(k)) {
			x.seed(k)
		}
	}
	x.seed(WildcardKey)
	for _, c := range b.m.caps {
		x.seed(ProvidedKey(c.Name))
	}

	for _, e := range b.m.enumerated {
		b.ref(e.Source, XrefEntry{Referrer: e.Name, Category: RefEnum, Loc: e.Loc}, e.Loc.Span)
	}
	for _, r := range b.m.restricted {
		b.ref(r.Source, XrefEntry{Referrer: r.Name, Category: RefRestricted, Loc: r.Loc}, r.Loc.Span)
	}
	for _, d := range b.m.described {
		b.ref(d.Source, XrefEntry{Referrer: d.Name, Category: RefDescribed, Loc: d.Loc}, d.Loc.Span)
	}
	for _, d := range b.m.described {
		for _, f := range d.Fields {
			loc := d.Loc
			loc.Span = f.Span
			b.ref(f.Type, XrefEntry{Referrer: d.Name, Member: f.Name, Category: RefField, Loc: loc}, f.Span)
		}
	}
	for _, c := range b.m.caps {
		for _, p := range c.Providers {
			h := p.Head()
			b.ref(ProvidedKey(c.Name), XrefEntry{Referrer: h.Name, Category: RefProvided, Loc: h.Loc}, h.Loc.Span)
		}
	}

	return notef("%d references, %d dropped", x.Len(), b.m.dropped), nil
}

// resolvable reports whether a Type Index key can be the target of a
// reference. Constant names cannot.
func resolvable(entries []TypeEntry) bool {
	for _, e := range entries {
		if e.Kind != NameConstant {
			return true
		}
	}
	return false
}

// ref records e under key. An empty key means no reference was made.
func (b *builder) ref(key string, e XrefEntry, sp source.Span) {
	if key == "" {
		return
	}
	if !b.m.xref.Has(key) {
		b.m.dropped++
		who := e.Referrer
		if e.Member != "" {
			who += "." + e.Member
		}
		msg := fmt.Sprintf("%s %s refers to unknown name %q", e.Category, who, key)
		diag.ReportInfo(b.rep, diag.XrfUnresolved, sp, msg).Emit()
		trace.Point(b.tr, trace.ScopeDecl, "drop "+key, who, b.span)
		return
	}
	b.m.xref.add(key, e)
}
