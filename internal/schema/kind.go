package schema

// Kind is the category of a type declaration. Every declaration has
// exactly one.
type Kind uint8

const (
	KindPrimitive Kind = iota + 1
	KindDescribed
	KindEnumerated
	KindRestricted
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindDescribed:
		return "described"
	case KindEnumerated:
		return "enumerated"
	case KindRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// Kinds lists every category in classification order.
var Kinds = [...]Kind{KindPrimitive, KindDescribed, KindEnumerated, KindRestricted}
