package schema

import (
	"amqpspec/internal/source"
)

// Location names where a declaration lives.
type Location struct {
	Document string
	Section  string
	Span     source.Span
}

func (l Location) String() string {
	return l.Document + "/" + l.Section
}

// Header holds what every type declaration carries.
type Header struct {
	Name     string
	Label    string
	Provides []string
	Loc      Location
}

// LongName is "<section> <name>", used to order types within a category.
func (h *Header) LongName() string {
	return h.Loc.Section + " " + h.Name
}

// Decl is a classified type declaration. The concrete type is one of
// *Primitive, *Described, *Enumerated or *Restricted.
type Decl interface {
	Kind() Kind
	Head() *Header
	sealed()
}

type Primitive struct {
	Header
	Encodings []Encoding
}

// Encoding is one wire representation of a primitive type.
type Encoding struct {
	Name     string // empty for the unnamed default encoding
	Code     string
	Category string
	Width    uint32
	Label    string
	Span     source.Span
}

// FullName is "type" for the default encoding and "type:name" otherwise.
func (e Encoding) FullName(typeName string) string {
	if e.Name == "" {
		return typeName
	}
	return typeName + ":" + e.Name
}

type Described struct {
	Header
	Source     string
	Descriptor Descriptor
	Fields     []Field
}

type Descriptor struct {
	Name string
	Code string // raw "0xDDDDDDDD:0xIIIIIIII"
	Span source.Span
}

type Field struct {
	Name      string
	Type      string
	Requires  []string
	Default   string
	Mandatory bool
	Multiple  bool
	Label     string
	Span      source.Span
}

type Enumerated struct {
	Header
	Source  string
	Choices []Choice
}

type Choice struct {
	Name  string
	Value string
	Label string
	Span  source.Span
}

// Restricted is an alias or refinement of Source with no choices and no descriptor.
type Restricted struct {
	Header
	Source string
}

func (*Primitive) Kind() Kind  { return KindPrimitive }
func (*Described) Kind() Kind  { return KindDescribed }
func (*Enumerated) Kind() Kind { return KindEnumerated }
func (*Restricted) Kind() Kind { return KindRestricted }

func (p *Primitive) Head() *Header  { return &p.Header }
func (d *Described) Head() *Header  { return &d.Header }
func (e *Enumerated) Head() *Header { return &e.Header }
func (r *Restricted) Head() *Header { return &r.Header }

func (*Primitive) sealed()  {}
func (*Described) sealed()  {}
func (*Enumerated) sealed() {}
func (*Restricted) sealed() {}

// SourceOf returns the referenced source type of d, or "" for primitives.
func SourceOf(d Decl) string {
	switch t := d.(type) {
	case *Described:
		return t.Source
	case *Enumerated:
		return t.Source
	case *Restricted:
		return t.Source
	}
	return ""
}

// Constant is a named literal declared by a definition element.
type Constant struct {
	Name    string
	Value   string
	Label   string
	Numeric uint64
	IsNum   bool
	Loc     Location
}
