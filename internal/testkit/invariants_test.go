package testkit

import (
	"path/filepath"
	"testing"

	"amqpspec/internal/index"
	"amqpspec/internal/source"
	"amqpspec/internal/xmldoc"
)

func buildFixture(t *testing.T) (*index.Model, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	var paths []string
	for _, f := range []string{"types.xml", "transport.xml", "messaging.xml", "security.xml", "transactions.xml"} {
		paths = append(paths, filepath.Join("..", "index", "testdata", "amqp", f))
	}
	docs, err := xmldoc.LoadSet(fs, paths)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m, err := index.Build(docs, index.Options{FileSet: fs})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m, fs
}

func TestFixtureInvariants(t *testing.T) {
	m, fs := buildFixture(t)
	if err := CheckAll(m, fs); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestSpansNeedTheirFileSet(t *testing.T) {
	m, _ := buildFixture(t)
	if err := CheckSpans(m, source.NewFileSet()); err == nil {
		t.Fatal("expected an unknown-file error with an empty file set")
	}
}

func TestNilModel(t *testing.T) {
	checks := map[string]func(*index.Model) error{
		"partition": CheckPartition,
		"grand":     CheckGrandConsistency,
		"xrefs":     CheckFieldXrefs,
	}
	for name, check := range checks {
		if err := check(nil); err == nil {
			t.Errorf("%s: expected error for nil model", name)
		}
	}
	if err := CheckAll(nil, nil); err == nil {
		t.Error("CheckAll: expected error for nil model")
	}
}
