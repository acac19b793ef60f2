package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"amqpspec/internal/source"
	"amqpspec/internal/xmldoc"
)

// Node is one entry of a document in declaration order: a type
// declaration or a constant, never both.
type Node struct {
	Decl     Decl
	Constant *Constant
}

// Collect classifies every type and definition element of doc in section
// order. Position strings in errors are resolved through fs when it is
// not nil.
func Collect(fs *source.FileSet, doc *xmldoc.Document) ([]Node, error) {
	var nodes []Node
	for _, sec := range doc.Sections {
		secName := sec.AttrOr("name", "")
		for _, el := range sec.Children {
			loc := Location{Document: doc.Name, Section: secName, Span: el.Span(doc.File)}
			switch el.Tag {
			case "type":
				d, err := Classify(el, loc)
				if err != nil {
					return nil, positioned(fs, err)
				}
				nodes = append(nodes, Node{Decl: d})
			case "definition":
				c, err := ParseConstant(el, loc)
				if err != nil {
					return nil, positioned(fs, err)
				}
				nodes = append(nodes, Node{Constant: &c})
			}
		}
	}
	return nodes, nil
}

func positioned(fs *source.FileSet, err error) error {
	var de *DeclError
	if errors.As(err, &de) && fs != nil && de.Pos == "" {
		de.Pos = fs.Position(de.Loc.Span)
	}
	return err
}

// Classify turns one type element into its declaration variant:
// class="primitive" first, then a descriptor child, then choice children,
// and Restricted for everything else.
func Classify(el *xmldoc.Element, loc Location) (Decl, error) {
	name, ok := el.Attr("name")
	if !ok || strings.TrimSpace(name) == "" {
		return nil, &DeclError{Loc: loc, Err: ErrMissingName}
	}
	head := Header{
		Name:     name,
		Label:    el.AttrOr("label", ""),
		Provides: SplitList(el.AttrOr("provides", "")),
		Loc:      loc,
	}
	file := loc.Span.File
	src := el.AttrOr("source", "")

	if el.AttrOr("class", "") == "primitive" {
		p := &Primitive{Header: head}
		for _, enc := range el.FindAll("encoding") {
			e, err := parseEncoding(enc, file)
			if err != nil {
				return nil, &DeclError{Loc: loc, Decl: name, Err: err}
			}
			p.Encodings = append(p.Encodings, e)
		}
		return p, nil
	}

	if desc := el.Find("descriptor"); desc != nil {
		d := &Described{
			Header: head,
			Source: src,
			Descriptor: Descriptor{
				Name: desc.AttrOr("name", ""),
				Code: desc.AttrOr("code", ""),
				Span: desc.Span(file),
			},
		}
		for _, f := range el.FindAll("field") {
			fname := f.AttrOr("name", "")
			if fname == "" {
				return nil, &DeclError{Loc: loc, Decl: name, Err: fmt.Errorf("field: %w", ErrMissingName)}
			}
			d.Fields = append(d.Fields, Field{
				Name:      fname,
				Type:      f.AttrOr("type", ""),
				Requires:  SplitList(f.AttrOr("requires", "")),
				Default:   f.AttrOr("default", ""),
				Mandatory: f.AttrOr("mandatory", "") == "true",
				Multiple:  f.AttrOr("multiple", "") == "true",
				Label:     f.AttrOr("label", ""),
				Span:      f.Span(file),
			})
		}
		return d, nil
	}

	if choices := el.FindAll("choice"); len(choices) > 0 {
		e := &Enumerated{Header: head, Source: src, Choices: make([]Choice, 0, len(choices))}
		for _, c := range choices {
			cname := c.AttrOr("name", "")
			if cname == "" {
				return nil, &DeclError{Loc: loc, Decl: name, Err: fmt.Errorf("choice: %w", ErrMissingName)}
			}
			e.Choices = append(e.Choices, Choice{
				Name:  cname,
				Value: c.AttrOr("value", ""),
				Label: c.AttrOr("label", ""),
				Span:  c.Span(file),
			})
		}
		return e, nil
	}

	return &Restricted{Header: head, Source: src}, nil
}

func parseEncoding(el *xmldoc.Element, file source.FileID) (Encoding, error) {
	e := Encoding{
		Name:     el.AttrOr("name", ""),
		Code:     el.AttrOr("code", ""),
		Category: el.AttrOr("category", ""),
		Label:    el.AttrOr("label", ""),
		Span:     el.Span(file),
	}
	if w, ok := el.Attr("width"); ok && w != "" {
		n, err := strconv.ParseUint(w, 10, 64)
		if err != nil {
			return Encoding{}, fmt.Errorf("encoding width %q: %w", w, ErrBadAttribute)
		}
		width, err := safecast.Conv[uint32](n)
		if err != nil {
			return Encoding{}, fmt.Errorf("encoding width %q: %w", w, err)
		}
		e.Width = width
	}
	return e, nil
}

// ParseConstant reads a definition element. Non-numeric values are kept
// as text with IsNum unset.
func ParseConstant(el *xmldoc.Element, loc Location) (Constant, error) {
	name := el.AttrOr("name", "")
	if strings.TrimSpace(name) == "" {
		return Constant{}, &DeclError{Loc: loc, Err: fmt.Errorf("definition: %w", ErrMissingName)}
	}
	c := Constant{
		Name:  name,
		Value: el.AttrOr("value", ""),
		Label: el.AttrOr("label", ""),
		Loc:   loc,
	}
	if n, err := strconv.ParseUint(c.Value, 0, 64); err == nil {
		c.Numeric, c.IsNum = n, true
	}
	return c, nil
}

// SplitList splits a comma-separated attribute, trimming items and
// dropping empty ones. It returns nil for an empty list.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
