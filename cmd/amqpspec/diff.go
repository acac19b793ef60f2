package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"amqpspec/internal/project"
	"amqpspec/internal/snapshot"
	"amqpspec/internal/version"
)

var diffExitCode bool

func init() {
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit with status 1 when the snapshots differ")
}

var diffCmd = &cobra.Command{
	Use:   "diff [OLD [NEW]]",
	Short: "Compare two snapshots, or a snapshot with the current documents",
	Long: `diff compares two snapshot files. With one argument the snapshot is
compared against a fresh build of the manifest documents; with none the
manifest [snapshot].path is used as the old side.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldPath := ""
	if len(args) > 0 {
		oldPath = args[0]
	} else {
		m, err := resolveManifest(cmd)
		if err != nil {
			return err
		}
		if m != nil {
			oldPath = m.SnapshotPath()
		}
	}
	if oldPath == "" {
		return fmt.Errorf("no snapshot given and no [snapshot].path in %s", project.ManifestName)
	}

	var prev, cur *snapshot.Snapshot
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		prev, err = snapshot.ReadFile(oldPath)
		return err
	})
	g.Go(func() error {
		if len(args) == 2 {
			var err error
			cur, err = snapshot.ReadFile(args[1])
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := loadModel(cmd, nil, loadOptions{})
		if err != nil {
			return err
		}
		cur = snapshot.FromModel(s.model, version.Tool(), s.fs.Digest())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	drift := snapshot.Diff(prev, cur)
	if err := drift.WriteText(cmd.OutOrStdout()); err != nil {
		return err
	}
	if diffExitCode && !drift.Empty() {
		return &exitError{code: 1, err: errors.New("snapshots differ")}
	}
	return nil
}
