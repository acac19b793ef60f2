package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Options controls rendering. Width 0 disables truncation.
type Options struct {
	Color bool
	Width int
}

type palette struct {
	header lipgloss.Style
	name   lipgloss.Style
	num    lipgloss.Style
	ok     lipgloss.Style
	bad    lipgloss.Style
	dim    lipgloss.Style
}

func newPalette(color bool) palette {
	p := palette{
		header: lipgloss.NewStyle(),
		name:   lipgloss.NewStyle(),
		num:    lipgloss.NewStyle(),
		ok:     lipgloss.NewStyle(),
		bad:    lipgloss.NewStyle(),
		dim:    lipgloss.NewStyle(),
	}
	if !color {
		return p
	}
	p.header = p.header.Bold(true).Foreground(lipgloss.Color("7"))
	p.name = p.name.Foreground(lipgloss.Color("6"))
	p.ok = p.ok.Foreground(lipgloss.Color("2"))
	p.bad = p.bad.Bold(true).Foreground(lipgloss.Color("1"))
	p.dim = p.dim.Foreground(lipgloss.Color("8"))
	return p
}

// pad left-aligns s in a column of width cells.
func pad(s string, width int) string {
	s = truncate(s, width)
	if n := runewidth.StringWidth(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft right-aligns s in a column of width cells.
func padLeft(s string, width int) string {
	if n := runewidth.StringWidth(s); n < width {
		s = strings.Repeat(" ", width-n) + s
	}
	return s
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
