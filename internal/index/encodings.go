package index

import (
	"cmp"
	"slices"

	"amqpspec/internal/schema"
)

// encodings builds the name- and code-sorted encoding tables. A full name
// seen twice stops the build.
func (b *builder) encodings() (string, error) {
	seen := make(map[string]EncodingRow)
	rows := make([]EncodingRow, 0, len(b.m.primitives)*2)

	for _, p := range b.m.primitives {
		for _, enc := range p.Encodings {
			row := EncodingRow{
				FullName: enc.FullName(p.Name),
				Type:     p.Name,
				Encoding: enc,
				Loc: schema.Location{
					Document: p.Loc.Document,
					Section:  p.Loc.Section,
					Span:     enc.Span,
				},
			}
			if first, dup := seen[row.FullName]; dup {
				return "", &EncodingError{
					Document: p.Loc.Document,
					Type:     p.Name,
					Name:     row.FullName,
					Pos:      b.pos(row.Loc, enc.Span),
					FirstPos: b.pos(first.Loc, first.Loc.Span),
				}
			}
			seen[row.FullName] = row
			rows = append(rows, row)
		}
	}

	b.m.encByName = slices.Clone(rows)
	slices.SortStableFunc(b.m.encByName, func(x, y EncodingRow) int {
		return cmp.Compare(x.FullName, y.FullName)
	})

	b.m.encByCode = rows
	slices.SortStableFunc(b.m.encByCode, func(x, y EncodingRow) int {
		if c := cmp.Compare(x.Encoding.Code, y.Encoding.Code); c != 0 {
			return c
		}
		return cmp.Compare(x.FullName, y.FullName)
	})

	return plural(len(rows), "encoding", ""), nil
}
