package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"amqpspec/internal/diag"
	"amqpspec/internal/index"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadRepositoryManifest(t *testing.T) {
	m, ok, err := Load(".")
	if err != nil || !ok {
		t.Fatalf("expected repository manifest, ok=%v err=%v", ok, err)
	}
	if filepath.Base(m.Path) != ManifestName {
		t.Fatalf("unexpected manifest path %q", m.Path)
	}
	if len(m.Config.Documents.Files) != 5 || m.Config.Expect["grand_index"] != 341 {
		t.Fatalf("unexpected config %+v", m.Config)
	}

	paths, err := m.DocumentPaths()
	if err != nil {
		t.Fatalf("DocumentPaths: %v", err)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("document %s: %v", p, err)
		}
	}
	if !strings.HasSuffix(filepath.ToSlash(m.SnapshotPath()), "build/amqp.snapshot") {
		t.Fatalf("unexpected snapshot path %q", m.SnapshotPath())
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[documents]\nfiles = [\"a.xml\"]\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, ManifestName))
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[documents]\nfiles = [\"a.xml\"]\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Config.Diagnostics.Max != defaultMaxDiagnostics || !m.Config.Diagnostics.Unresolved {
		t.Fatalf("unexpected diagnostics defaults %+v", m.Config.Diagnostics)
	}
	if m.Config.Diagnostics.MinSeverity != diag.SevInfo {
		t.Fatalf("unexpected default threshold %v", m.Config.Diagnostics.MinSeverity)
	}
	if m.SnapshotPath() != "" {
		t.Fatalf("expected no snapshot path, got %q", m.SnapshotPath())
	}
}

func TestLoadManifestSeverityThreshold(t *testing.T) {
	body := "[documents]\nfiles = [\"a.xml\"]\n[diagnostics]\nmin_severity = \"warning\"\n"
	m, err := LoadManifest(writeManifest(t, t.TempDir(), body))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Config.Diagnostics.MinSeverity != diag.SevWarning {
		t.Fatalf("threshold = %v, want warning", m.Config.Diagnostics.MinSeverity)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
		text string
	}{
		{"no documents", "[expect]\nxref = 1\n", ErrDocumentsMissing, ""},
		{"no files", "[documents]\nroot = \".\"\n", ErrFilesMissing, ""},
		{"empty file", "[documents]\nfiles = [\" \"]\n", nil, "files[0] is empty"},
		{"unknown key", "[documents]\nfiles = [\"a.xml\"]\nextra = 1\n", nil, "unknown key"},
		{"bad toml", "[documents\n", nil, "failed to parse TOML"},
		{"bad severity", "[documents]\nfiles = [\"a.xml\"]\n[diagnostics]\nmin_severity = \"loud\"\n", nil, "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, t.TempDir(), tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.text != "" && !strings.Contains(err.Error(), tc.text) {
				t.Fatalf("expected %q in %v", tc.text, err)
			}
		})
	}
}

func TestDocumentPathsRejectEscape(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[documents]\nroot = \"..\"\nfiles = [\"a.xml\"]\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if _, err := m.DocumentPaths(); err == nil || !strings.Contains(err.Error(), "escapes") {
		t.Fatalf("expected escape error, got %v", err)
	}

	path = writeManifest(t, dir, "[documents]\nfiles = [\"../a.xml\"]\n")
	if m, err = LoadManifest(path); err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if _, err := m.DocumentPaths(); err == nil {
		t.Fatal("expected escape error for file")
	}
}

func TestVerify(t *testing.T) {
	counts := index.Counts{Constants: 13, Xref: 250}
	if err := Verify(map[string]int{"constants": 13}, counts); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err := Verify(map[string]int{"constants": 13, "xref": 252, "bogus": 1}, counts)
	var cm *CountMismatchError
	if !errors.As(err, &cm) {
		t.Fatalf("expected CountMismatchError, got %v", err)
	}
	if len(cm.Mismatches) != 1 || cm.Mismatches[0] != (Mismatch{Name: "xref", Want: 252, Got: 250}) {
		t.Fatalf("unexpected mismatches %+v", cm.Mismatches)
	}
	if len(cm.Unknown) != 1 || cm.Unknown[0] != "bogus" {
		t.Fatalf("unexpected unknown %v", cm.Unknown)
	}
	if got := err.Error(); got != "count check failed: xref: want 252, got 250; bogus: unknown count" {
		t.Fatalf("unexpected message %q", got)
	}
}
