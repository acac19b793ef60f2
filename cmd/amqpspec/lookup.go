package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"amqpspec/internal/report"
)

var lookupDocs []string

func init() {
	lookupCmd.Flags().StringSliceVar(&lookupDocs, "doc", nil, "documents to index instead of the manifest set")
}

var lookupCmd = &cobra.Command{
	Use:   "lookup NAME...",
	Short: "Show where names are declared and referenced",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadModel(cmd, lookupDocs, loadOptions{})
		if err != nil {
			return err
		}
		color, err := useColor(cmd)
		if err != nil {
			return err
		}
		opts := report.Options{Color: color, Width: terminalWidth()}

		out := cmd.OutOrStdout()
		var missing []string
		for i, name := range args {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if len(args) > 1 {
				fmt.Fprintf(out, "%s:\n", name)
			}
			found, err := report.Lookup(out, s.model, s.fs, name, opts)
			if err != nil {
				return err
			}
			if !found {
				missing = append(missing, name)
				fmt.Fprintf(out, "%s is not indexed\n", name)
			}
		}
		if len(missing) > 0 {
			return &exitError{code: 3, err: fmt.Errorf("unknown: %s", strings.Join(missing, ", "))}
		}
		return nil
	},
}
