package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amqpspec/internal/index"
	"amqpspec/internal/source"
	"amqpspec/internal/xmldoc"
)

func buildFixture(t *testing.T) (*index.Model, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	var paths []string
	for _, f := range []string{"types.xml", "transport.xml", "messaging.xml", "security.xml", "transactions.xml"} {
		paths = append(paths, filepath.Join("..", "index", "testdata", "amqp", f))
	}
	docs, err := xmldoc.LoadSet(fs, paths)
	require.NoError(t, err)
	m, err := index.Build(docs, index.Options{FileSet: fs})
	require.NoError(t, err)
	return m, fs
}

// sectionLines returns the indented lines under title.
func sectionLines(out, title string) []string {
	var lines []string
	in := false
	for _, l := range strings.Split(out, "\n") {
		switch {
		case l == title:
			in = true
		case strings.HasPrefix(l, "  ") && in:
			lines = append(lines, strings.TrimSpace(l))
		default:
			in = false
		}
	}
	return lines
}

func TestCountsTable(t *testing.T) {
	m, _ := buildFixture(t)
	var out strings.Builder
	expect := map[string]int{"constants": 13, "described": 41}

	require.NoError(t, Counts(&out, m.Counts(), expect, Options{}))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, "count                  value  expect  status", lines[0])
	assert.Equal(t, "constants                 13      13  ok", lines[1])
	assert.Equal(t, "described                 40      41  MISMATCH", lines[5])
	assert.Equal(t, "encodings                 39       -", lines[2])
}

func TestCountsTableWithoutExpectations(t *testing.T) {
	m, _ := buildFixture(t)
	var out strings.Builder
	require.NoError(t, Counts(&out, m.Counts(), nil, Options{}))
	assert.Contains(t, out.String(), "grand_index              341\n")
	assert.NotContains(t, out.String(), "expect")
}

func TestLookupSharedChoice(t *testing.T) {
	m, fs := buildFixture(t)
	var out strings.Builder
	found, err := Lookup(&out, m, fs, "redirect", Options{})
	require.NoError(t, err)
	require.True(t, found)

	members := sectionLines(out.String(), "members")
	require.Len(t, members, 2)
	assert.True(t, strings.HasPrefix(members[0], "choice of connection-error"))
	assert.True(t, strings.HasPrefix(members[1], "choice of link-error"))
	assert.Contains(t, members[0], "transport/definitions")
}

func TestLookupCapability(t *testing.T) {
	m, fs := buildFixture(t)
	var out strings.Builder
	found, err := Lookup(&out, m, fs, "frame", Options{})
	require.NoError(t, err)
	require.True(t, found)

	declared := sectionLines(out.String(), "declared")
	require.NotEmpty(t, declared)
	assert.True(t, strings.HasPrefix(declared[0], "capability"))
	assert.Len(t, sectionLines(out.String(), "provided by"), 9)
}

func TestLookupUnknown(t *testing.T) {
	m, fs := buildFixture(t)
	var out strings.Builder
	found, err := Lookup(&out, m, fs, "no-such-name", Options{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, out.String())
}

func TestLookupTruncates(t *testing.T) {
	m, fs := buildFixture(t)
	var out strings.Builder
	_, err := Lookup(&out, m, fs, "frame", Options{Width: 30})
	require.NoError(t, err)
	for _, l := range sectionLines(out.String(), "provided by") {
		assert.LessOrEqual(t, len(l), 28, l)
		assert.True(t, strings.HasSuffix(l, "..."), l)
	}
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "   ab", padLeft("ab", 5))
	assert.Equal(t, "ab...", pad("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", truncate("abcdefgh", 0))
	assert.Equal(t, "abcde...", truncate("abcdefghijklmnop", 8))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
