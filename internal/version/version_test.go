package version

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if Tool() != "amqpspec/"+Semver || strings.Contains(Semver, "\x1b") {
		t.Errorf("unexpected tool id %q", Tool())
	}
	if SchemaRevision != "amqp-1.0" {
		t.Errorf("unexpected schema revision %q", SchemaRevision)
	}
}

func TestStringIncludesOptionalFields(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "1.2.3"
	GitCommit = ""
	BuildDate = ""
	if got := String(); got != "amqpspec 1.2.3 (amqp-1.0)" {
		t.Fatalf("unexpected banner %q", got)
	}

	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"
	got := String()
	if !strings.Contains(got, "commit abc123") || !strings.HasSuffix(got, "built 2024-01-15T10:30:00Z") {
		t.Fatalf("unexpected banner %q", got)
	}
}
