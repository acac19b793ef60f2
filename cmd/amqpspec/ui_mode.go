package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// progressMode is the value of index --ui.
type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on", "true", "yes":
		return progressOn, nil
	case "off", "false", "no":
		return progressOff, nil
	}
	return "", fmt.Errorf("invalid index --ui value %q (expected auto|on|off)", value)
}

// showProgress decides whether the pass view runs. --quiet always wins;
// auto needs stdout to be a terminal that can redraw in place.
func (m progressMode) showProgress(cmd *cobra.Command) bool {
	if quiet(cmd) {
		return false
	}
	switch m {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return os.Getenv("TERM") != "dumb" && isTerminal(os.Stdout)
}
