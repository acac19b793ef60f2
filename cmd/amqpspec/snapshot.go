package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"amqpspec/internal/project"
	"amqpspec/internal/snapshot"
	"amqpspec/internal/version"
)

var snapshotOut string

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "", "snapshot file (default: manifest [snapshot].path)")
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [document.xml...]",
	Short: "Write a binary snapshot of the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadModel(cmd, args, loadOptions{})
		if err != nil {
			return err
		}
		if err := s.printDiagnostics(cmd); err != nil {
			return err
		}

		path := snapshotOut
		if path == "" && s.manifest != nil {
			path = s.manifest.SnapshotPath()
		}
		if path == "" {
			return fmt.Errorf("no --output given and no [snapshot].path in %s", project.ManifestName)
		}

		snap := snapshot.FromModel(s.model, version.Tool(), s.fs.Digest())
		err = s.timer.Track("snapshot", func() (string, error) {
			return path, snapshot.WriteFile(path, snap)
		})
		if err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		s.printTimings()

		if !quiet(cmd) {
			digest, err := snapshot.Digest(snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %s (sha256 %s)\n", path, digest[:16])
		}
		return nil
	},
}
