package index

import (
	"amqpspec/internal/diag"
	"amqpspec/internal/schema"
	"amqpspec/internal/trace"
)

// classify sorts every declaration into its category, collects constants
// and records the provided-type relation in discovery order.
func (b *builder) classify() (string, error) {
	for _, doc := range b.docs {
		sp := trace.Begin(b.tr, trace.ScopeDocument, "document:"+doc.Name, b.span)
		nodes, err := schema.Collect(b.fs, doc)
		if err != nil {
			sp.End("failed")
			return "", err
		}
		if len(doc.Sections) == 0 {
			diag.ReportWarning(b.rep, diag.DocNoSections, doc.Root.Span(doc.File),
				"document "+doc.Name+" declares no sections").Emit()
		}
		b.m.documents = append(b.m.documents, doc.Name)

		for _, n := range nodes {
			if n.Constant != nil {
				b.m.constants = append(b.m.constants, *n.Constant)
				trace.Point(b.tr, trace.ScopeDecl, "constant "+n.Constant.Name, "", sp.ID())
				continue
			}
			b.addDecl(n.Decl)
			trace.Point(b.tr, trace.ScopeDecl, n.Decl.Kind().String()+" "+n.Decl.Head().Name, "", sp.ID())
		}
		b.nodes = append(b.nodes, nodes...)
		sp.WithCount("declarations", len(nodes)).End("")
	}

	return notef("%s, %s, %s", plural(len(b.m.decls), "type", ""),
		plural(len(b.m.constants), "constant", ""), plural(len(b.m.caps), "capability", "capabilities")), nil
}

func (b *builder) addDecl(d schema.Decl) {
	h := d.Head()
	b.m.decls = append(b.m.decls, d)

	if first, dup := b.m.lookup[h.Name]; dup {
		diag.ReportWarning(b.rep, diag.IdxDuplicateName, h.Loc.Span,
			"type "+h.Name+" is declared more than once; lookups use the first declaration").
			WithNote(first.Head().Loc.Span, "first declared here").
			Emit()
	} else {
		b.m.lookup[h.Name] = d
	}

	switch t := d.(type) {
	case *schema.Primitive:
		b.m.primitives = append(b.m.primitives, t)
		if len(t.Encodings) == 0 {
			diag.ReportWarning(b.rep, diag.DclMissingEncoding, h.Loc.Span,
				"primitive type "+h.Name+" declares no encodings").Emit()
		}
	case *schema.Described:
		b.described = append(b.described, t)
	case *schema.Enumerated:
		b.enumerated = append(b.enumerated, t)
	case *schema.Restricted:
		b.restricted = append(b.restricted, t)
	}

	for _, c := range h.Provides {
		i, ok := b.capIndex[c]
		if !ok {
			i = len(b.m.caps)
			b.capIndex[c] = i
			b.m.caps = append(b.m.caps, Capability{Name: c})
		}
		b.m.caps[i].Providers = append(b.m.caps[i].Providers, d)
	}
}
