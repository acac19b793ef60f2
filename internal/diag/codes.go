package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// document loading
	DocInfo       Code = 1000
	DocNoSections Code = 1003

	// declarations
	DclInfo            Code = 2000
	DclDuplicateChoice Code = 2005
	DclMissingEncoding Code = 2006

	// index construction
	IdxInfo          Code = 3000
	IdxDuplicateName Code = 3003

	// cross references
	XrfInfo       Code = 4000
	XrfUnresolved Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:        "Unknown error",
		DocInfo:            "Document information",
		DocNoSections:      "Document declares no sections",
		DclInfo:            "Declaration information",
		DclDuplicateChoice: "Choice name is declared by several types",
		DclMissingEncoding: "Primitive type declares no encodings",
		IdxInfo:            "Index information",
		IdxDuplicateName:   "Name already indexed",
		XrfInfo:            "Cross-reference information",
		XrfUnresolved:      "Reference to an unknown name",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DCL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IDX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("XRF%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
