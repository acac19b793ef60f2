package project

import (
	"fmt"
	"slices"
	"strings"

	"amqpspec/internal/index"
)

// Mismatch is one expected count that the build did not reproduce.
type Mismatch struct {
	Name string
	Want int
	Got  int
}

// CountMismatchError lists every [expect] entry that differs.
type CountMismatchError struct {
	Mismatches []Mismatch
	Unknown    []string
}

func (e *CountMismatchError) Error() string {
	parts := make([]string, 0, len(e.Mismatches)+len(e.Unknown))
	for _, m := range e.Mismatches {
		parts = append(parts, fmt.Sprintf("%s: want %d, got %d", m.Name, m.Want, m.Got))
	}
	for _, u := range e.Unknown {
		parts = append(parts, fmt.Sprintf("%s: unknown count", u))
	}
	return "count check failed: " + strings.Join(parts, "; ")
}

// Verify compares expect against counts. Names are checked in the
// canonical count order, then unknown names alphabetically.
func Verify(expect map[string]int, counts index.Counts) error {
	if len(expect) == 0 {
		return nil
	}
	var e CountMismatchError
	known := make(map[string]bool, len(expect))
	for _, nc := range counts.Named() {
		want, ok := expect[nc.Name]
		if !ok {
			continue
		}
		known[nc.Name] = true
		if want != nc.Value {
			e.Mismatches = append(e.Mismatches, Mismatch{Name: nc.Name, Want: want, Got: nc.Value})
		}
	}
	for name := range expect {
		if !known[name] {
			e.Unknown = append(e.Unknown, name)
		}
	}
	slices.Sort(e.Unknown)

	if len(e.Mismatches) == 0 && len(e.Unknown) == 0 {
		return nil
	}
	return &e
}
