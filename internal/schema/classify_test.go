package schema

import (
	"errors"
	"strings"
	"testing"

	"amqpspec/internal/source"
	"amqpspec/internal/xmldoc"
)

const doc = `<amqp name="mini">
  <section name="encodings">
    <type name="uint" class="primitive">
      <encoding code="0x70" category="fixed" width="4"/>
      <encoding name="smalluint" code="0x52" category="fixed" width="1"/>
    </type>
  </section>
  <section name="definitions">
    <type name="role" class="restricted" source="boolean">
      <choice name="sender" value="false"/>
      <choice name="receiver" value="true"/>
    </type>
    <type name="handle" class="restricted" source="uint" provides=" frame , ,link "/>
    <definition name="PORT" value="5672"/>
    <type name="amqp-value" class="restricted" source="*" provides="section">
      <descriptor name="amqp:amqp-value:*" code="0x00000000:0x00000077"/>
    </type>
    <definition name="GREETING" value="hello"/>
    <type name="error" class="composite" source="list">
      <descriptor name="amqp:error:list" code="0x00000000:0x0000001d"/>
      <field name="condition" type="symbol" requires="error-condition" mandatory="true"/>
      <field name="info" type="fields" multiple="true"/>
    </type>
  </section>
</amqp>`

func collect(t *testing.T, text string) []Node {
	t.Helper()
	fs := source.NewFileSet()
	d, err := xmldoc.Parse(fs, "mini.xml", strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	nodes, err := Collect(fs, d)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return nodes
}

func TestCollectOrderAndKinds(t *testing.T) {
	nodes := collect(t, doc)
	want := []string{"primitive uint", "enumerated role", "restricted handle", "const PORT",
		"described amqp-value", "const GREETING", "described error"}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, n := range nodes {
		var got string
		if n.Constant != nil {
			got = "const " + n.Constant.Name
		} else {
			got = n.Decl.Kind().String() + " " + n.Decl.Head().Name
		}
		if got != want[i] {
			t.Errorf("node %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestClassifyVariants(t *testing.T) {
	nodes := collect(t, doc)

	prim := nodes[0].Decl.(*Primitive)
	if len(prim.Encodings) != 2 || prim.Encodings[1].Width != 1 {
		t.Fatalf("unexpected encodings %+v", prim.Encodings)
	}
	if prim.Encodings[0].FullName("uint") != "uint" || prim.Encodings[1].FullName("uint") != "uint:smalluint" {
		t.Fatal("unexpected encoding full names")
	}

	enum := nodes[1].Decl.(*Enumerated)
	if enum.Source != "boolean" || len(enum.Choices) != 2 || enum.Choices[1].Value != "true" {
		t.Fatalf("unexpected enumerated %+v", enum)
	}
	if enum.LongName() != "definitions role" {
		t.Fatalf("unexpected long name %q", enum.LongName())
	}

	restr := nodes[2].Decl.(*Restricted)
	if len(restr.Provides) != 2 || restr.Provides[0] != "frame" || restr.Provides[1] != "link" {
		t.Fatalf("provides not trimmed: %q", restr.Provides)
	}

	// class="restricted" with a descriptor is still described
	val := nodes[4].Decl.(*Described)
	if val.Source != "*" || val.Descriptor.Code != "0x00000000:0x00000077" {
		t.Fatalf("unexpected described %+v", val)
	}

	errType := nodes[6].Decl.(*Described)
	if len(errType.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(errType.Fields))
	}
	cond := errType.Fields[0]
	if !cond.Mandatory || cond.Multiple || len(cond.Requires) != 1 || cond.Requires[0] != "error-condition" {
		t.Fatalf("unexpected field %+v", cond)
	}
	if !errType.Fields[1].Multiple {
		t.Fatal("expected multiple field")
	}
	if SourceOf(errType) != "list" || SourceOf(prim) != "" {
		t.Fatal("unexpected SourceOf")
	}
}

func TestConstants(t *testing.T) {
	nodes := collect(t, doc)
	port := nodes[3].Constant
	if !port.IsNum || port.Numeric != 5672 || port.Loc.Section != "definitions" {
		t.Fatalf("unexpected constant %+v", port)
	}
	if greet := nodes[5].Constant; greet.IsNum || greet.Value != "hello" {
		t.Fatalf("unexpected constant %+v", greet)
	}
}

func TestMissingNameIsFatal(t *testing.T) {
	fs := source.NewFileSet()
	d, err := xmldoc.Parse(fs, "bad.xml", strings.NewReader(
		"<amqp name=\"bad\">\n<section name=\"s\">\n<type class=\"restricted\" source=\"uint\"/>\n</section>\n</amqp>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Collect(fs, d)
	var de *DeclError
	if !errors.As(err, &de) || !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected DeclError wrapping ErrMissingName, got %v", err)
	}
	if de.Pos != "bad.xml:3:1" {
		t.Fatalf("unexpected position %q", de.Pos)
	}
}

func TestChoiceWithoutName(t *testing.T) {
	text := `<amqp><section name="s"><type name="t" source="uint"><choice value="1"/></type></section></amqp>`
	fs := source.NewFileSet()
	d, err := xmldoc.Parse(fs, "c.xml", strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Collect(fs, d); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestBadWidth(t *testing.T) {
	text := `<amqp><section name="s"><type name="t" class="primitive"><encoding code="0x1" width="wide"/></type></section></amqp>`
	fs := source.NewFileSet()
	d, err := xmldoc.Parse(fs, "w.xml", strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Collect(fs, d); !errors.Is(err, ErrBadAttribute) {
		t.Fatalf("expected ErrBadAttribute, got %v", err)
	}
}

func TestSplitList(t *testing.T) {
	cases := map[string][]string{
		"":                        nil,
		"  ":                      nil,
		"frame":                   {"frame"},
		"delivery-state, outcome": {"delivery-state", "outcome"},
		",a,,b ,":                 {"a", "b"},
	}
	for in, want := range cases {
		got := SplitList(in)
		if len(got) != len(want) {
			t.Fatalf("SplitList(%q) = %q, want %q", in, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("SplitList(%q) = %q, want %q", in, got, want)
			}
		}
	}
}
