package version

import "github.com/fatih/color"

// Build information, overridable via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("3") + "." + versionPatchColor.Sprint("0") + "-dev"

	// Semver is Version without colour, for machine-readable output.
	Semver = "0.3.0-dev"

	// SchemaRevision names the protocol revision the bundled documents describe.
	SchemaRevision = "amqp-1.0"

	GitCommit = ""
	BuildDate = ""
)

// Tool identifies this build in snapshots and JSON output.
func Tool() string {
	return "amqpspec/" + Semver
}

// String renders the one-line version banner.
func String() string {
	s := "amqpspec " + Version + " (" + SchemaRevision + ")"
	if GitCommit != "" {
		s += " commit " + GitCommit
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
