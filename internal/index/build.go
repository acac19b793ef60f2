package index

import (
	"fmt"
	"strconv"

	"amqpspec/internal/diag"
	"amqpspec/internal/observ"
	"amqpspec/internal/schema"
	"amqpspec/internal/source"
	"amqpspec/internal/trace"
	"amqpspec/internal/xmldoc"
)

// Options configures Build. Every field is optional.
type Options struct {
	// FileSet resolves spans to path:line:col in errors and diagnostics.
	FileSet  *source.FileSet
	Reporter diag.Reporter
	Tracer   trace.Tracer
	Timer    *observ.Timer
	// Parent is the trace span the build nests under.
	Parent uint64
	// Progress is called before and after every pass.
	Progress func(Stage)
}

// Stage describes a pass for progress reporting.
type Stage struct {
	Name  string
	Index int // 1-based
	Total int
	Done  bool
	Note  string
}

// Passes lists the build passes in execution order.
var Passes = []string{
	"classify",
	"encodings",
	"described",
	"enumerated",
	"restricted",
	"indices",
	"grand",
	"xref",
}

type builder struct {
	opts Options
	fs   *source.FileSet
	rep  diag.Reporter
	tr   trace.Tracer
	span uint64
	docs []*xmldoc.Document
	m    *Model

	// document order, before sorting
	nodes      []schema.Node
	described  []*schema.Described
	enumerated []*schema.Enumerated
	restricted []*schema.Restricted
	capIndex   map[string]int
}

// Build classifies docs and constructs every index. It fails on the first
// fatal error and returns no model in that case. Unresolved references are
// not fatal; they are counted and reported.
func Build(docs []*xmldoc.Document, opts Options) (*Model, error) {
	b := &builder{
		opts:     opts,
		fs:       opts.FileSet,
		rep:      opts.Reporter,
		tr:       opts.Tracer,
		docs:     docs,
		m:        newModel(),
		capIndex: make(map[string]int),
	}
	if b.rep == nil {
		b.rep = diag.NopReporter{}
	}
	if b.tr == nil {
		b.tr = trace.Nop
	}

	root := trace.Begin(b.tr, trace.ScopePass, "build", opts.Parent)
	b.span = root.ID()

	steps := []func() (string, error){
		b.classify,
		b.encodings,
		b.resolveDescribed,
		b.resolveEnumerated,
		b.resolveRestricted,
		b.indices,
		b.buildGrand,
		b.crossReference,
	}
	for i, step := range steps {
		if err := b.run(i, step); err != nil {
			root.End("failed")
			return nil, err
		}
	}

	c := b.m.Counts()
	root.WithCount("grand", c.GrandIndex).WithCount("xref", c.Xref).End("")
	return b.m, nil
}

func (b *builder) run(i int, step func() (string, error)) error {
	name := Passes[i]
	st := Stage{Name: name, Index: i + 1, Total: len(Passes)}
	if b.opts.Progress != nil {
		b.opts.Progress(st)
	}

	sp := trace.Begin(b.tr, trace.ScopePass, name, b.span)
	var note string
	err := b.opts.Timer.Track(name, func() (string, error) {
		var stepErr error
		note, stepErr = step()
		return note, stepErr
	})
	if err != nil {
		sp.End(err.Error())
		return err
	}
	sp.End(note)

	if b.opts.Progress != nil {
		st.Done, st.Note = true, note
		b.opts.Progress(st)
	}
	return nil
}

// pos renders a span for messages, falling back to the location name.
func (b *builder) pos(loc schema.Location, sp source.Span) string {
	if b.fs != nil && b.fs.Get(sp.File) != nil {
		return b.fs.Position(sp)
	}
	return loc.String()
}

// plural renders "n what", using many when n is not 1. An empty many
// appends "s" to what.
func plural(n int, what, many string) string {
	if n == 1 {
		return "1 " + what
	}
	if many == "" {
		many = what + "s"
	}
	return strconv.Itoa(n) + " " + many
}

func notef(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
