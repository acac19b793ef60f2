package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"amqpspec/internal/index"
)

const (
	nameCol  = 20
	valueCol = 8
)

// Counts renders the model counts as a table. When expect is non-nil a
// column compares each count with its expected value; names missing from
// expect are left blank.
func Counts(w io.Writer, c index.Counts, expect map[string]int, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	head := pad("count", nameCol) + padLeft("value", valueCol)
	if expect != nil {
		head += padLeft("expect", valueCol) + "  status"
	}
	b.WriteString(p.header.Render(head))
	b.WriteString("\n")

	for _, nc := range c.Named() {
		line := p.name.Render(pad(nc.Name, nameCol)) + p.num.Render(padLeft(strconv.Itoa(nc.Value), valueCol))
		if expect != nil {
			want, ok := expect[nc.Name]
			switch {
			case !ok:
				line += padLeft("-", valueCol)
			case want == nc.Value:
				line += padLeft(strconv.Itoa(want), valueCol) + "  " + p.ok.Render("ok")
			default:
				line += padLeft(strconv.Itoa(want), valueCol) + "  " + p.bad.Render("MISMATCH")
			}
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write counts: %w", err)
	}
	return nil
}
