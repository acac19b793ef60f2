package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"amqpspec/internal/diag"
)

var (
	ErrDocumentsMissing = errors.New("missing [documents]")
	ErrFilesMissing     = errors.New("missing [documents].files")
)

// Manifest describes a document set and what building it should produce.
type Manifest struct {
	Path   string // manifest file
	Dir    string // directory holding the manifest
	Config Config
}

type Config struct {
	Documents   DocumentsConfig   `toml:"documents"`
	Expect      map[string]int    `toml:"expect"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Snapshot    SnapshotConfig    `toml:"snapshot"`
}

type DocumentsConfig struct {
	Root  string   `toml:"root"`
	Files []string `toml:"files"`
}

type DiagnosticsConfig struct {
	Max        int  `toml:"max"`
	Unresolved bool `toml:"unresolved"`
	// MinSeverity hides diagnostics below it; the default shows everything.
	MinSeverity diag.Severity `toml:"min_severity"`
}

type SnapshotConfig struct {
	Path string `toml:"path"`
}

const defaultMaxDiagnostics = 200

// LoadManifest parses path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("documents") {
		return nil, fmt.Errorf("%s: %w", path, ErrDocumentsMissing)
	}
	if !meta.IsDefined("documents", "files") || len(cfg.Documents.Files) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrFilesMissing)
	}
	for i, f := range cfg.Documents.Files {
		if strings.TrimSpace(f) == "" {
			return nil, fmt.Errorf("%s: [documents].files[%d] is empty", path, i)
		}
	}
	if !meta.IsDefined("diagnostics", "max") || cfg.Diagnostics.Max <= 0 {
		cfg.Diagnostics.Max = defaultMaxDiagnostics
	}
	if !meta.IsDefined("diagnostics", "unresolved") {
		cfg.Diagnostics.Unresolved = true
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	return &Manifest{
		Path:   path,
		Dir:    filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Load finds the manifest above startDir and parses it. ok is false when
// there is none.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// DocumentPaths resolves the document files in manifest order. Paths must
// stay inside the manifest directory.
func (m *Manifest) DocumentPaths() ([]string, error) {
	root := filepath.Join(m.Dir, filepath.FromSlash(strings.TrimSpace(m.Config.Documents.Root)))
	if !pathWithin(m.Dir, root) {
		return nil, fmt.Errorf("%s: [documents].root %q escapes the manifest directory", m.Path, m.Config.Documents.Root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%s: [documents].root: %w", m.Path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: [documents].root %q is not a directory", m.Path, m.Config.Documents.Root)
	}

	paths := make([]string, 0, len(m.Config.Documents.Files))
	for _, f := range m.Config.Documents.Files {
		p := filepath.Join(root, filepath.FromSlash(strings.TrimSpace(f)))
		if !pathWithin(root, p) {
			return nil, fmt.Errorf("%s: document %q escapes [documents].root", m.Path, f)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// SnapshotPath resolves [snapshot].path, or "" when unset.
func (m *Manifest) SnapshotPath() string {
	p := strings.TrimSpace(m.Config.Snapshot.Path)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, filepath.FromSlash(p))
}
