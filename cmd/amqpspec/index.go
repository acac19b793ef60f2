package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"amqpspec/internal/project"
	"amqpspec/internal/report"
)

var (
	indexCheck bool
	indexUI    string
)

func init() {
	indexCmd.Flags().BoolVar(&indexCheck, "check", false, "fail when counts differ from the manifest [expect] table")
	indexCmd.Flags().StringVar(&indexUI, "ui", "off", "show pass progress (auto|on|off)")
}

var indexCmd = &cobra.Command{
	Use:   "index [document.xml...]",
	Short: "Build the indices and print their counts",
	Long: `index loads the documents named on the command line, or listed in the
manifest, builds every index and prints the resulting counts.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	mode, err := parseProgressMode(indexUI)
	if err != nil {
		return err
	}
	s, err := loadModel(cmd, args, loadOptions{progress: mode.showProgress(cmd)})
	if err != nil {
		return err
	}
	if err := s.printDiagnostics(cmd); err != nil {
		return err
	}

	var expect map[string]int
	if s.manifest != nil {
		expect = s.manifest.Config.Expect
	}
	if !quiet(cmd) {
		color, err := useColor(cmd)
		if err != nil {
			return err
		}
		if err := report.Counts(cmd.OutOrStdout(), s.model.Counts(), expect, report.Options{Color: color}); err != nil {
			return err
		}
	}
	s.printTimings()

	if !indexCheck {
		return nil
	}
	if s.manifest == nil {
		return fmt.Errorf("--check needs a %s with an [expect] table", project.ManifestName)
	}
	if err := project.Verify(expect, s.model.Counts()); err != nil {
		return &exitError{code: 2, err: err}
	}
	if !quiet(cmd) {
		fmt.Fprintln(os.Stderr, "counts match", s.manifest.Path)
	}
	return nil
}
