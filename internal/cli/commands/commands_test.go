package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlmark/internal/cli/output"
	"github.com/leapstack-labs/sqlmark/internal/config"
	"github.com/leapstack-labs/sqlmark/pkg/annotate"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnnotateCommand_JSON(t *testing.T) {
	config.ResetConfig()
	sqlPath := writeFixture(t, "query.sql", "SELECT a FROM t")
	refsPath := writeFixture(t, "refs.json",
		`[{"referenceNum":1,"type":"column","sqlSnippet":"a","sqlLocation":{"line":1}}]`)

	out, _, err := execute(t, NewAnnotateCommand(), sqlPath, "--refs", refsPath, "--output", "json")
	require.NoError(t, err)

	var result annotate.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Lines, 1)
	require.Len(t, result.Lines[0], 3)
	assert.Equal(t, annotate.SegmentMatched, result.Lines[0][1].Kind)
	assert.Equal(t, "a", result.Lines[0][1].Text)
}

func TestAnnotateCommand_Text(t *testing.T) {
	config.ResetConfig()
	sqlPath := writeFixture(t, "query.sql", "SELECT a FROM t")
	refsPath := writeFixture(t, "refs.json",
		`[{"referenceNum":1,"type":"column","sqlSnippet":"a","sqlLocation":{"line":1}}]`)

	out, _, err := execute(t, NewAnnotateCommand(), sqlPath, "--refs", refsPath, "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT a")
	assert.Contains(t, out, "[columns 1]")
}

func TestAnnotateCommand_Stdin(t *testing.T) {
	config.ResetConfig()
	cmd := NewAnnotateCommand()
	cmd.SetIn(bytes.NewBufferString("SELECT b"))

	out, _, err := execute(t, cmd, "-", "--output", "json")
	require.NoError(t, err)

	var result annotate.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "SELECT b", result.Lines[0][0].Text)
}

func TestAnnotateCommand_Diagnostics(t *testing.T) {
	config.ResetConfig()
	sqlPath := writeFixture(t, "query.sql", "SELECT a")
	refsPath := writeFixture(t, "refs.json",
		`[{"referenceNum":9,"type":"column","sqlSnippet":"zzz","sqlLocation":{"line":1}}]`)

	_, errOut, err := execute(t, NewAnnotateCommand(),
		sqlPath, "--refs", refsPath, "--output", "text", "--diagnostics")
	require.NoError(t, err)
	assert.Contains(t, errOut, "reference 9")
}

func TestAnnotateCommand_MissingSQLFile(t *testing.T) {
	config.ResetConfig()
	_, _, err := execute(t, NewAnnotateCommand(), filepath.Join(t.TempDir(), "nope.sql"))
	assert.Error(t, err)
}

func TestAnnotateCommand_WatchRejectsStdin(t *testing.T) {
	config.ResetConfig()
	cmd := NewAnnotateCommand()
	cmd.SetIn(bytes.NewBufferString("SELECT 1"))
	_, _, err := execute(t, cmd, "-", "--watch")
	assert.Error(t, err)
}

func TestRefsCommand_JSON(t *testing.T) {
	config.ResetConfig()
	sqlPath := writeFixture(t, "query.sql", "SELECT a FROM t")
	refsPath := writeFixture(t, "refs.json", `[
		{"referenceNum":1,"type":"column","sqlSnippet":"a","sqlLocation":{"line":1}},
		{"referenceNum":2,"type":"filter","sqlSnippet":"zzz","sqlLocation":{"line":1}},
		{"referenceNum":3,"type":"table","sqlSnippet":"t"}
	]`)

	out, _, err := execute(t, NewRefsCommand(), sqlPath, "--refs", refsPath, "--output", "json")
	require.NoError(t, err)

	var rows []output.RefRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)

	assert.Equal(t, statusMatched, rows[0].Status)
	assert.Equal(t, "1", rows[0].Line)
	assert.Equal(t, statusUnmatched, rows[1].Status)
	assert.Equal(t, statusNoLocation, rows[2].Status)
	assert.Equal(t, "-", rows[2].Line)
}

func TestRefsCommand_RequiresRefsFlag(t *testing.T) {
	config.ResetConfig()
	sqlPath := writeFixture(t, "query.sql", "SELECT 1")
	_, _, err := execute(t, NewRefsCommand(), sqlPath)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, NewVersionCommand("9.9.9"))
	require.NoError(t, err)
	assert.Contains(t, out, "sqlmark v9.9.9")
}
