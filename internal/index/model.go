package index

import (
	"amqpspec/internal/schema"
)

// EncodingRow is one entry of the encoding tables.
type EncodingRow struct {
	FullName string
	Type     string
	Encoding schema.Encoding
	Loc      schema.Location
}

// DescribedType is a described declaration with its parsed descriptor code.
type DescribedType struct {
	*schema.Described
	ShortCode string // "0x" + last two hex digits of the id part
	Domain    uint32
	ID        uint32
}

// Capability is a provided-type name with its providers in declaration order.
type Capability struct {
	Name      string
	Providers []schema.Decl
}

// Model is the finished index set of one document set. It is never
// modified after Build returns; slices returned by accessors are shared
// and must be treated as read-only.
type Model struct {
	documents  []string
	decls      []schema.Decl
	lookup     map[string]schema.Decl
	primitives []*schema.Primitive
	encByName  []EncodingRow
	encByCode  []EncodingRow
	described  []DescribedType
	enumerated []*schema.Enumerated
	restricted []*schema.Restricted
	constants  []schema.Constant
	caps       []Capability

	types  *Index[TypeEntry]
	fields *Index[MemberEntry]
	enums  *Index[MemberEntry]
	grand  *Index[GrandEntry]
	xref   *Index[XrefEntry]

	dropped int
}

func newModel() *Model {
	return &Model{
		lookup: make(map[string]schema.Decl),
		types:  newIndex[TypeEntry](),
		fields: newIndex[MemberEntry](),
		enums:  newIndex[MemberEntry](),
		grand:  newIndex[GrandEntry](),
		xref:   newIndex[XrefEntry](),
	}
}

// Documents lists the document names in build order.
func (m *Model) Documents() []string { return m.documents }

// Decls lists every type declaration in document order.
func (m *Model) Decls() []schema.Decl { return m.decls }

func (m *Model) Primitives() []*schema.Primitive { return m.primitives }

// EncodingsByName is sorted by full name.
func (m *Model) EncodingsByName() []EncodingRow { return m.encByName }

// EncodingsByCode is sorted by the code text, not its numeric value.
func (m *Model) EncodingsByCode() []EncodingRow { return m.encByCode }

// Described is sorted by short code, then long name.
func (m *Model) Described() []DescribedType { return m.described }

// Enumerated is sorted by long name.
func (m *Model) Enumerated() []*schema.Enumerated { return m.enumerated }

// Restricted is sorted by long name.
func (m *Model) Restricted() []*schema.Restricted { return m.restricted }

// Constants are in declaration order.
func (m *Model) Constants() []schema.Constant { return m.constants }

// Capabilities are in first-discovery order.
func (m *Model) Capabilities() []Capability { return m.caps }

func (m *Model) TypeIndex() *Index[TypeEntry]          { return m.types }
func (m *Model) FieldIndex() *Index[MemberEntry]       { return m.fields }
func (m *Model) EnumerationIndex() *Index[MemberEntry] { return m.enums }
func (m *Model) GrandIndex() *Index[GrandEntry]        { return m.grand }
func (m *Model) XrefIndex() *Index[XrefEntry]          { return m.xref }

// Lookup finds a type declaration by name. The first declaration wins
// when a name is declared twice.
func (m *Model) Lookup(name string) (schema.Decl, bool) {
	d, ok := m.lookup[name]
	return d, ok
}

// DroppedReferences counts references to names that are not indexed.
func (m *Model) DroppedReferences() int { return m.dropped }

// Counts summarises the model.
type Counts struct {
	Constants         int
	Encodings         int
	Enumerated        int
	Restricted        int
	Described         int
	Primitive         int
	Capabilities      int
	TypeIndex         int
	FieldIndex        int
	EnumerationIndex  int
	GrandIndex        int
	Xref              int
	DroppedReferences int
}

func (m *Model) Counts() Counts {
	return Counts{
		Constants:         len(m.constants),
		Encodings:         len(m.encByName),
		Enumerated:        len(m.enumerated),
		Restricted:        len(m.restricted),
		Described:         len(m.described),
		Primitive:         len(m.primitives),
		Capabilities:      len(m.caps),
		TypeIndex:         m.types.Len(),
		FieldIndex:        m.fields.Len(),
		EnumerationIndex:  m.enums.Len(),
		GrandIndex:        m.grand.Len(),
		Xref:              m.xref.Len(),
		DroppedReferences: m.dropped,
	}
}

// NamedCount is one labelled count.
type NamedCount struct {
	Name  string
	Value int
}

// Named lists the counts with the names used by manifests and reports.
func (c Counts) Named() []NamedCount {
	return []NamedCount{
		{"constants", c.Constants},
		{"encodings", c.Encodings},
		{"enumerated", c.Enumerated},
		{"restricted", c.Restricted},
		{"described", c.Described},
		{"primitive", c.Primitive},
		{"capabilities", c.Capabilities},
		{"type_index", c.TypeIndex},
		{"field_index", c.FieldIndex},
		{"enum_index", c.EnumerationIndex},
		{"grand_index", c.GrandIndex},
		{"xref", c.Xref},
		{"dropped_references", c.DroppedReferences},
	}
}

// Get returns the count called name.
func (c Counts) Get(name string) (int, bool) {
	for _, nc := range c.Named() {
		if nc.Name == name {
			return nc.Value, true
		}
	}
	return 0, false
}
