package index

import (
	"amqpspec/internal/schema"
	"amqpspec/internal/source"
)

// NameKind tells which namespace a Type Index entry comes from. The same
// short name can be a type and an encoding at once.
type NameKind uint8

const (
	NameType NameKind = iota + 1
	NameConstant
	NameEncoding
	NameCapability
)

func (k NameKind) String() string {
	switch k {
	case NameType:
		return "type"
	case NameConstant:
		return "constant"
	case NameEncoding:
		return "encoding"
	case NameCapability:
		return "capability"
	default:
		return "unknown"
	}
}

// TypeEntry is one Type Index occurrence. Category is set for NameType only.
type TypeEntry struct {
	Loc      schema.Location
	Kind     NameKind
	Category schema.Kind
}

// MemberEntry is a field or choice occurrence with its owning type.
type MemberEntry struct {
	Loc   schema.Location
	Owner string
	Span  source.Span
}

// GrandCategory tags Grand Index entries by origin.
type GrandCategory uint8

const (
	GrandType GrandCategory = iota + 1
	GrandField
	GrandEnumValue
)

func (c GrandCategory) String() string {
	switch c {
	case GrandType:
		return "type"
	case GrandField:
		return "field"
	case GrandEnumValue:
		return "enum value"
	default:
		return "unknown"
	}
}

// GrandEntry is the union view over the three primary indices. Owner is
// empty for type entries; Kind is zero for member entries.
type GrandEntry struct {
	Category GrandCategory
	Loc      schema.Location
	Owner    string
	Kind     NameKind
}

// RefCategory says how a referrer points at a name.
type RefCategory uint8

const (
	RefEnum RefCategory = iota + 1
	RefRestricted
	RefDescribed
	RefField
	RefProvided
)

func (c RefCategory) String() string {
	switch c {
	case RefEnum:
		return "enum"
	case RefRestricted:
		return "restricted"
	case RefDescribed:
		return "described"
	case RefField:
		return "field"
	case RefProvided:
		return "provided"
	default:
		return "unknown"
	}
}

// XrefEntry records one reference to the key it is filed under. Member is
// the field name for RefField and empty otherwise.
type XrefEntry struct {
	Referrer string
	Member   string
	Category RefCategory
	Loc      schema.Location
}

// ProvidedKey is the Cross-Reference key for the providers of capability.
func ProvidedKey(capability string) string {
	return capability + ",PROVIDED"
}

// WildcardKey is the "any type" reference used by fields and sources.
const WildcardKey = "*"
