package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"amqpspec/internal/diag"
	"amqpspec/internal/index"
	"amqpspec/internal/observ"
	"amqpspec/internal/project"
	"amqpspec/internal/source"
	"amqpspec/internal/trace"
	"amqpspec/internal/ui"
	"amqpspec/internal/xmldoc"
)

const defaultMaxDiagnostics = 200

// session is one loaded and indexed document set.
type session struct {
	manifest *project.Manifest // nil when documents came from arguments
	fs       *source.FileSet
	model    *index.Model
	bag      *diag.Bag
	timer    *observ.Timer
}

type loadOptions struct {
	// progress renders build passes with the terminal UI.
	progress bool
}

// resolveManifest honours --manifest, then searches upwards from the
// working directory. It returns nil without error when there is none.
func resolveManifest(cmd *cobra.Command) (*project.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("manifest")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return project.LoadManifest(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, ok, err := project.Load(wd)
	if err != nil || !ok {
		return nil, err
	}
	return m, nil
}

// documentPaths prefers explicit arguments over the manifest.
func documentPaths(cmd *cobra.Command, args []string) ([]string, *project.Manifest, error) {
	m, err := resolveManifest(cmd)
	if err != nil {
		return nil, nil, err
	}
	if len(args) > 0 {
		return args, m, nil
	}
	if m == nil {
		return nil, nil, fmt.Errorf("no documents given and no %s found", project.ManifestName)
	}
	paths, err := m.DocumentPaths()
	if err != nil {
		return nil, nil, err
	}
	return paths, m, nil
}

// loadModel reads the documents and builds the model.
func loadModel(cmd *cobra.Command, args []string, opts loadOptions) (*session, error) {
	ctx := cmd.Context()
	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, cmd.Name(), trace.CurrentSpan(ctx))

	s, err := load(cmd, args, opts, tr, root.ID())
	if err != nil {
		root.End("failed")
		dumpTraceRing(cmd)
		return nil, err
	}
	c := s.model.Counts()
	root.WithCount("grand", c.GrandIndex).WithCount("dropped", c.DroppedReferences).End("")
	return s, nil
}

func load(cmd *cobra.Command, args []string, opts loadOptions, tr trace.Tracer, parent uint64) (*session, error) {
	paths, manifest, err := documentPaths(cmd, args)
	if err != nil {
		return nil, err
	}

	limit := defaultMaxDiagnostics
	if manifest != nil {
		limit = manifest.Config.Diagnostics.Max
	}
	s := &session{
		manifest: manifest,
		bag:      diag.NewBag(limit),
	}
	if manifest != nil {
		s.fs = source.NewFileSetWithBase(manifest.Dir)
	} else if wd, err := os.Getwd(); err == nil {
		s.fs = source.NewFileSetWithBase(wd)
	} else {
		s.fs = source.NewFileSet()
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		s.timer = observ.NewTimer()
	}

	var docs []*xmldoc.Document
	sp := trace.Begin(tr, trace.ScopePass, "load", parent)
	err = s.timer.Track("load", func() (string, error) {
		var loadErr error
		docs, loadErr = xmldoc.LoadSet(s.fs, paths)
		return fmt.Sprintf("%d documents", len(docs)), loadErr
	})
	if err != nil {
		sp.End("failed")
		return nil, fmt.Errorf("load documents: %w", err)
	}
	sp.WithCount("documents", len(docs)).End("")

	bopts := index.Options{
		FileSet:  s.fs,
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: s.bag}),
		Tracer:   tr,
		Timer:    s.timer,
		Parent:   parent,
	}
	if opts.progress {
		s.model, err = ui.RunBuild(buildTitle(paths), docs, bopts, os.Stdout)
	} else {
		s.model, err = index.Build(docs, bopts)
	}
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return s, nil
}

func buildTitle(paths []string) string {
	if len(paths) == 1 {
		return "indexing " + filepath.Base(paths[0])
	}
	return fmt.Sprintf("indexing %d documents", len(paths))
}

// printDiagnostics writes collected diagnostics to stderr, honouring the
// manifest threshold and --quiet. Unresolved reference notices are hidden
// when the manifest turns them off.
func (s *session) printDiagnostics(cmd *cobra.Command) error {
	threshold := diag.SevInfo
	if s.manifest != nil {
		threshold = s.manifest.Config.Diagnostics.MinSeverity
	}
	if quiet(cmd) {
		threshold = max(threshold, diag.SevWarning)
	}
	items := diag.Filter(s.bag.Items(), threshold)
	if s.manifest != nil && !s.manifest.Config.Diagnostics.Unresolved {
		kept := items[:0]
		for _, d := range items {
			if d.Code != diag.XrfUnresolved {
				kept = append(kept, d)
			}
		}
		items = kept
	}
	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	return diag.WritePretty(os.Stderr, items, s.fs, color)
}

func (s *session) printTimings() {
	if s.timer.Len() == 0 {
		return
	}
	fmt.Fprint(os.Stderr, s.timer.Summary())
}

// exitError carries a specific process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
