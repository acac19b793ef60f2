package diag

import (
	"testing"

	"amqpspec/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		d := NewError(XrfUnresolved, source.At(0, uint32(i)), "x")
		kept := b.Add(&d)
		if want := i < 2; kept != want {
			t.Fatalf("add %d: expected kept=%v", i, want)
		}
	}
	if b.Len() != 2 || b.Cap() != 2 || !b.HasErrors() {
		t.Fatalf("unexpected bag state len=%d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	add := func(sev Severity, code Code, start uint32) {
		d := New(sev, code, source.At(0, start), "m")
		b.Add(&d)
	}
	add(SevInfo, XrfUnresolved, 9)
	add(SevWarning, DclDuplicateChoice, 3)
	add(SevError, IdxDuplicateName, 3)
	add(SevInfo, XrfUnresolved, 9)

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("expected 3 after dedup, got %d", b.Len())
	}
	b.Sort()
	got := []Code{b.Items()[0].Code, b.Items()[1].Code, b.Items()[2].Code}
	want := []Code{IdxDuplicateName, DclDuplicateChoice, XrfUnresolved}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
	if b.CountCode(XrfUnresolved) != 1 {
		t.Fatalf("expected one XRF4001")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		ReportInfo(r, XrfUnresolved, source.At(1, 4), "unknown name \"foo\"").Emit()
	}
	if bag.Len() != 1 || r.Suppressed() != 2 {
		t.Fatalf("len=%d suppressed=%d", bag.Len(), r.Suppressed())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		DocNoSections:      "DOC1003",
		DclDuplicateChoice: "DCL2005",
		IdxDuplicateName:   "IDX3003",
		XrfUnresolved:      "XRF4001",
		UnknownCode:        "E0000",
		Code(5002):         "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: expected %s, got %s", code, want, got)
		}
	}
	if XrfUnresolved.String() != "[XRF4001]: Reference to an unknown name" {
		t.Errorf("unexpected String %q", XrfUnresolved.String())
	}
}

func TestParseSeverityAndFilter(t *testing.T) {
	for in, want := range map[string]Severity{"info": SevInfo, "WARN": SevWarning, " warning ": SevWarning, "Error": SevError} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSeverity("loud"); err == nil {
		t.Error("expected error for unknown severity")
	}

	diags := []*Diagnostic{
		{Severity: SevInfo, Code: XrfUnresolved},
		{Severity: SevWarning, Code: DocNoSections},
		{Severity: SevError, Code: IdxDuplicateName},
	}
	if got := Filter(diags, SevWarning); len(got) != 2 || got[0].Code != DocNoSections {
		t.Fatalf("Filter(warning) = %v", got)
	}
	if got := Filter(diags, SevInfo); len(got) != 3 {
		t.Fatalf("Filter(info) kept %d", len(got))
	}
}
