package xmldoc

import (
	"amqpspec/internal/source"
)

// Attr is a namespace-free attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a namespace-free element tree. Offset and End
// are byte offsets of the start tag and of the end of the element.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
	Offset   uint32
	End      uint32
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// Find returns the first direct child with the given tag.
func (e *Element) Find(tag string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child with the given tag in document order.
func (e *Element) FindAll(tag string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Span locates the element's start tag inside file.
func (e *Element) Span(file source.FileID) source.Span {
	if e == nil {
		return source.Span{File: file}
	}
	return source.Span{File: file, Start: e.Offset, End: e.End}
}
