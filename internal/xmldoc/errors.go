package xmldoc

import (
	"errors"
	"fmt"
)

// ErrDocument is wrapped by every *DocumentError.
var ErrDocument = errors.New("protocol document unusable")

// DocumentError reports a document that is missing or not well-formed XML.
// The whole build stops on it.
type DocumentError struct {
	Path string
	Line int // 0 when unknown
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() []error {
	return []error{ErrDocument, e.Err}
}
