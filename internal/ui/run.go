package ui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"amqpspec/internal/index"
	"amqpspec/internal/xmldoc"
)

type buildOutcome struct {
	model *index.Model
	err   error
}

// RunBuild runs index.Build in the background while rendering its passes
// to out. The caller's Progress callback, if any, still receives every stage.
func RunBuild(title string, docs []*xmldoc.Document, opts index.Options, out io.Writer) (*index.Model, error) {
	events := make(chan index.Stage, len(index.Passes)*2)
	outcome := make(chan buildOutcome, 1)

	next := opts.Progress
	go func() {
		o := opts
		o.Progress = func(st index.Stage) {
			if next != nil {
				next(st)
			}
			events <- st
		}
		m, err := index.Build(docs, o)
		outcome <- buildOutcome{model: m, err: err}
		close(events)
	}()

	program := tea.NewProgram(NewProgressModel(title, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	res := <-outcome
	if uiErr != nil {
		return res.model, fmt.Errorf("progress view: %w", uiErr)
	}
	return res.model, res.err
}
