// Copyright © 2025 The declnav authors

package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `
(decl ns (kind namespace) (name a))
(decl x (kind var) (name x) (sig "int x") (at 1:5))
(tree
  (block
    (declref (name x) (decl x) (at 2:4)
      (qual (qualifier (name a) (decl ns) (at 2:1))))))
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.decl")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0o600))
	return path
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRefsCommand_Flags(t *testing.T) {
	assert.Equal(t, "refs FILE", refsCmd.Use)
	assert.NotNil(t, refsCmd.Flags().Lookup("json"))
}

func TestRefsCommand_Dump(t *testing.T) {
	path := writeFixture(t)
	refsJSON = false

	out := captureStdout(t, func() {
		require.NoError(t, refsCmd.RunE(refsCmd, []string{path}))
	})
	assert.Contains(t, out, "targets = {a}")
	assert.Contains(t, out, "qualifier = 'a::'")
}

func TestRefsCommand_JSON(t *testing.T) {
	path := writeFixture(t)
	refsJSON = true
	defer func() { refsJSON = false }()

	out := captureStdout(t, func() {
		require.NoError(t, refsCmd.RunE(refsCmd, []string{path}))
	})

	var records []refRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Name)
	assert.Empty(t, records[0].Qualifier)
	assert.Equal(t, "x", records[1].Name)
	assert.Equal(t, "a::", records[1].Qualifier)
	assert.Equal(t, []string{"int x"}, records[1].Targets)
}

func TestResolveCommand(t *testing.T) {
	path := writeFixture(t)

	out := captureStdout(t, func() {
		require.NoError(t, resolveCmd.RunE(resolveCmd, []string{path, "2:4"}))
	})
	assert.Contains(t, out, `declref "x" resolves to:`)
	assert.Contains(t, out, "int x")
}

func TestResolveCommand_Miss(t *testing.T) {
	path := writeFixture(t)

	err := resolveCmd.RunE(resolveCmd, []string{path, "9:9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name at 9:9")
}

func TestResolveCommand_BadPosition(t *testing.T) {
	tests := []string{"nowhere", "0:1", "1:0", "x:y"}
	for _, pos := range tests {
		_, _, err := parsePos(pos)
		assert.Error(t, err, pos)
	}
	line, col, err := parsePos("12:34")
	require.NoError(t, err)
	assert.Equal(t, 12, line)
	assert.Equal(t, 34, col)
}

func TestLSPCommand_Flags(t *testing.T) {
	assert.NotNil(t, lspCmd.Flags().Lookup("stdio"))
	assert.NotNil(t, lspCmd.Flags().Lookup("port"))
}
