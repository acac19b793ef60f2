package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"amqpspec/internal/source"
)

// Document is one parsed protocol document.
type Document struct {
	Name     string // root "name" attribute, or the file stem
	Path     string
	File     source.FileID
	Root     *Element
	Sections []*Element
}

// Load reads path through fs and parses it.
func Load(fs *source.FileSet, path string) (*Document, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	return build(fs, id)
}

// Parse reads a document from r and registers it in fs as a virtual file.
func Parse(fs *source.FileSet, name string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DocumentError{Path: name, Err: err}
	}
	return build(fs, fs.AddVirtual(name, data))
}

// LoadSet loads paths in order and stops at the first failure.
func LoadSet(fs *source.FileSet, paths []string) ([]*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := Load(fs, p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func build(fs *source.FileSet, id source.FileID) (*Document, error) {
	file := fs.Get(id)
	root, err := parseTree(file.Content)
	if err != nil {
		de := &DocumentError{Path: file.Path, Err: err}
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			de.Line = syn.Line
			de.Err = errors.New(syn.Msg)
		}
		return nil, de
	}

	name := root.AttrOr("name", "")
	if name == "" {
		base := filepath.Base(file.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &Document{
		Name:     name,
		Path:     file.Path,
		File:     id,
		Root:     root,
		Sections: root.FindAll("section"),
	}, nil
}

func parseTree(content []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		stack      []*Element
		root       *Element
		rootClosed bool
	)
	for {
		off, err := safecast.Conv[uint32](dec.InputOffset())
		if err != nil {
			return nil, fmt.Errorf("document too large: %w", err)
		}
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %q after document end", t.Name.Local)
			}
			elem := &Element{
				Tag:    nfc(t.Name.Local),
				Attrs:  convertAttrs(t.Attr),
				Offset: off,
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			top.Text = nfc(strings.TrimSpace(top.Text))
			if end, convErr := safecast.Conv[uint32](dec.InputOffset()); convErr == nil {
				top.End = end
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				rootClosed = true
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorable(string(t)) {
					return nil, errors.New("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].Text += string(t)
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

// convertAttrs drops namespace declarations and keeps local names only.
func convertAttrs(in []xml.Attr) []Attr {
	out := make([]Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{Name: nfc(a.Name.Local), Value: nfc(a.Value)})
	}
	return out
}

func nfc(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

func isIgnorable(data string) bool {
	for _, r := range data {
		if r != '\uFEFF' && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
