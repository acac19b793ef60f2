package index

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEncoding   = errors.New("duplicate encoding name")
	ErrMalformedDescriptor = errors.New("malformed descriptor code")
)

// EncodingError reports two encodings with the same full name.
type EncodingError struct {
	Document string
	Type     string
	Name     string // full name, "type" or "type:encoding"
	Pos      string
	FirstPos string
}

func (e *EncodingError) Error() string {
	msg := fmt.Sprintf("%s: %s: type %q: encoding %q already defined", e.Pos, e.Document, e.Type, e.Name)
	if e.FirstPos != "" {
		msg += " at " + e.FirstPos
	}
	return msg
}

func (e *EncodingError) Unwrap() error { return ErrDuplicateEncoding }

// DescriptorError reports a descriptor code that does not have the
// 0xDDDDDDDD:0x000000II shape.
type DescriptorError struct {
	Document string
	Type     string
	Code     string
	Pos      string
	Reason   string
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("%s: %s: type %q: descriptor code %q: %s", e.Pos, e.Document, e.Type, e.Code, e.Reason)
}

func (e *DescriptorError) Unwrap() error { return ErrMalformedDescriptor }
