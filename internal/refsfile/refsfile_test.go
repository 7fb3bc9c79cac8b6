package refsfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSONBareList(t *testing.T) {
	path := writeFile(t, "refs.json", `[
		{"referenceNum": 1, "type": "column", "sqlSnippet": "a", "sqlLocation": {"line": 1}},
		{"referenceNum": "x", "type": "table", "sqlSnippet": "t"}
	]`)

	refs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "1", refs[0].Num)
	assert.Equal(t, "a", refs[0].Snippet)
	require.NotNil(t, refs[0].Location)
	assert.Equal(t, 1, refs[0].Location.Line)

	assert.Equal(t, "x", refs[1].Num)
	assert.Nil(t, refs[1].Location)
}

func TestLoad_JSONDocument(t *testing.T) {
	path := writeFile(t, "refs.json", `{"references": [
		{"referenceNum": 2, "type": "filter", "sqlSnippet": "x = 1", "sqlLocation": {"line": 3}}
	]}`)

	refs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "2", refs[0].Num)
	assert.Equal(t, 3, refs[0].Location.Line)
}

func TestLoad_YAMLBareList(t *testing.T) {
	path := writeFile(t, "refs.yaml", `
- referenceNum: 1
  type: column
  sqlSnippet: a
  sqlLocation:
    line: 2
- referenceNum: note-1
  type: metric
  sqlSnippet: SUM(total)
`)

	refs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "1", refs[0].Num)
	assert.Equal(t, 2, refs[0].Location.Line)
	assert.Equal(t, "note-1", refs[1].Num)
	assert.Equal(t, "SUM(total)", refs[1].Snippet)
	assert.Nil(t, refs[1].Location)
}

func TestLoad_YAMLDocument(t *testing.T) {
	path := writeFile(t, "refs.yml", `
references:
  - referenceNum: 7
    type: table
    sqlSnippet: orders
    sqlLocation:
      line: 1
`)

	refs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "7", refs[0].Num)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_BadJSON(t *testing.T) {
	path := writeFile(t, "refs.json", `{not json`)
	_, err := Load(path)
	assert.Error(t, err)
}
