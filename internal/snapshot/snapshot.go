package snapshot

import (
	"amqpspec/internal/index"
)

// SchemaVersion is bumped whenever the encoded layout changes.
const SchemaVersion uint16 = 1

// Snapshot is the serialisable form of an index.Model. It only holds
// slices so the encoding is byte-for-byte deterministic.
type Snapshot struct {
	Schema       uint16       `msgpack:"schema"`
	Tool         string       `msgpack:"tool"`
	SourceDigest [32]byte     `msgpack:"source_digest"`
	Documents    []string     `msgpack:"documents"`
	Counts       []Count      `msgpack:"counts"`
	Encodings    []Encoding   `msgpack:"encodings"`
	Described    []Described  `msgpack:"described"`
	Enumerated   []Enumerated `msgpack:"enumerated"`
	Restricted   []Restricted `msgpack:"restricted"`
	Constants    []Constant   `msgpack:"constants"`
	Capabilities []Capability `msgpack:"capabilities"`
	Xref         []XrefKey    `msgpack:"xref"`
}

type Count struct {
	Name  string `msgpack:"name"`
	Value int    `msgpack:"value"`
}

type Encoding struct {
	Name     string `msgpack:"name"`
	Type     string `msgpack:"type"`
	Code     string `msgpack:"code"`
	Category string `msgpack:"category"`
	Width    uint32 `msgpack:"width"`
}

type Described struct {
	Name       string  `msgpack:"name"`
	Document   string  `msgpack:"document"`
	Section    string  `msgpack:"section"`
	Source     string  `msgpack:"source"`
	Descriptor string  `msgpack:"descriptor"`
	Code       string  `msgpack:"code"`
	ShortCode  string  `msgpack:"short_code"`
	Domain     uint32  `msgpack:"domain"`
	ID         uint32  `msgpack:"id"`
	Fields     []Field `msgpack:"fields"`
}

type Field struct {
	Name      string   `msgpack:"name"`
	Type      string   `msgpack:"type"`
	Requires  []string `msgpack:"requires,omitempty"`
	Default   string   `msgpack:"default,omitempty"`
	Mandatory bool     `msgpack:"mandatory"`
	Multiple  bool     `msgpack:"multiple"`
}

type Enumerated struct {
	Name     string   `msgpack:"name"`
	Document string   `msgpack:"document"`
	Section  string   `msgpack:"section"`
	Source   string   `msgpack:"source"`
	Choices  []Choice `msgpack:"choices"`
}

type Choice struct {
	Name  string `msgpack:"name"`
	Value string `msgpack:"value"`
}

type Restricted struct {
	Name     string `msgpack:"name"`
	Document string `msgpack:"document"`
	Section  string `msgpack:"section"`
	Source   string `msgpack:"source"`
}

type Constant struct {
	Name    string `msgpack:"name"`
	Section string `msgpack:"section"`
	Value   string `msgpack:"value"`
}

type Capability struct {
	Name      string   `msgpack:"name"`
	Providers []string `msgpack:"providers"`
}

type XrefKey struct {
	Name string `msgpack:"name"`
	Refs []Ref  `msgpack:"refs"`
}

type Ref struct {
	Referrer string `msgpack:"referrer"`
	Member   string `msgpack:"member,omitempty"`
	Category string `msgpack:"category"`
}

// FromModel captures m. sourceDigest identifies the input documents.
func FromModel(m *index.Model, tool string, sourceDigest [32]byte) *Snapshot {
	s := &Snapshot{
		Schema:       SchemaVersion,
		Tool:         tool,
		SourceDigest: sourceDigest,
		Documents:    append([]string(nil), m.Documents()...),
	}

	for _, nc := range m.Counts().Named() {
		s.Counts = append(s.Counts, Count{Name: nc.Name, Value: nc.Value})
	}

	for _, r := range m.EncodingsByName() {
		s.Encodings = append(s.Encodings, Encoding{
			Name:     r.FullName,
			Type:     r.Type,
			Code:     r.Encoding.Code,
			Category: r.Encoding.Category,
			Width:    r.Encoding.Width,
		})
	}

	for _, d := range m.Described() {
		sd := Described{
			Name:       d.Name,
			Document:   d.Loc.Document,
			Section:    d.Loc.Section,
			Source:     d.Source,
			Descriptor: d.Descriptor.Name,
			Code:       d.Descriptor.Code,
			ShortCode:  d.ShortCode,
			Domain:     d.Domain,
			ID:         d.ID,
		}
		for _, f := range d.Fields {
			sd.Fields = append(sd.Fields, Field{
				Name:      f.Name,
				Type:      f.Type,
				Requires:  f.Requires,
				Default:   f.Default,
				Mandatory: f.Mandatory,
				Multiple:  f.Multiple,
			})
		}
		s.Described = append(s.Described, sd)
	}

	for _, e := range m.Enumerated() {
		se := Enumerated{Name: e.Name, Document: e.Loc.Document, Section: e.Loc.Section, Source: e.Source}
		for _, c := range e.Choices {
			se.Choices = append(se.Choices, Choice{Name: c.Name, Value: c.Value})
		}
		s.Enumerated = append(s.Enumerated, se)
	}

	for _, r := range m.Restricted() {
		s.Restricted = append(s.Restricted, Restricted{
			Name: r.Name, Document: r.Loc.Document, Section: r.Loc.Section, Source: r.Source,
		})
	}

	for _, c := range m.Constants() {
		s.Constants = append(s.Constants, Constant{Name: c.Name, Section: c.Loc.Section, Value: c.Value})
	}

	for _, c := range m.Capabilities() {
		sc := Capability{Name: c.Name}
		for _, p := range c.Providers {
			sc.Providers = append(sc.Providers, p.Head().Name)
		}
		s.Capabilities = append(s.Capabilities, sc)
	}

	x := m.XrefIndex()
	for _, k := range x.SortedKeys() {
		entries := x.Get(k)
		if len(entries) == 0 {
			continue
		}
		xk := XrefKey{Name: k, Refs: make([]Ref, len(entries))}
		for i, e := range entries {
			xk.Refs[i] = Ref{Referrer: e.Referrer, Member: e.Member, Category: e.Category.String()}
		}
		s.Xref = append(s.Xref, xk)
	}
	return s
}

// Count returns the named count, or -1 when the snapshot lacks it.
func (s *Snapshot) Count(name string) int {
	for _, c := range s.Counts {
		if c.Name == name {
			return c.Value
		}
	}
	return -1
}
