package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingName marks a declaration, field or choice without a name.
	ErrMissingName = errors.New("declaration has no name")
	// ErrBadAttribute marks an attribute value that cannot be interpreted.
	ErrBadAttribute = errors.New("invalid attribute value")
)

// DeclError reports a declaration that cannot be classified.
type DeclError struct {
	Loc  Location
	Pos  string // path:line:col when known
	Decl string // owning type name, may be empty
	Err  error
}

func (e *DeclError) Error() string {
	where := e.Loc.String()
	if e.Pos != "" {
		where = e.Pos
	}
	if e.Decl != "" {
		return fmt.Sprintf("%s: %s: %v", where, e.Decl, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *DeclError) Unwrap() error { return e.Err }
