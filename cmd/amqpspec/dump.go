package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"amqpspec/internal/snapshot"
	"amqpspec/internal/version"
)

var dumpFormat string

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "text", "output format (text|json)")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [document.xml...]",
	Short: "Print every table and index in a stable order",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(dumpFormat)
		switch format {
		case "text", "json":
		default:
			return fmt.Errorf("unsupported format %q (must be text or json)", dumpFormat)
		}

		s, err := loadModel(cmd, args, loadOptions{})
		if err != nil {
			return err
		}
		if err := s.printDiagnostics(cmd); err != nil {
			return err
		}
		defer s.printTimings()

		out := cmd.OutOrStdout()
		if format == "text" {
			return s.model.WriteText(out)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot.FromModel(s.model, version.Tool(), s.fs.Digest()))
	},
}
