package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XJIeI5/computor/internal/parser"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() { dotFile, cfgFile = "", "" })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootSolves(t *testing.T) {
	out, err := execute(t, "5 * X^0 + 4 * X^1 = 4 * X^0")
	require.NoError(t, err)
	assert.Equal(t, "Reduced form: 1 * X^0 + 4 * X^1 = 0\nPolynomial degree: 1\nThe solution is:\n-0.250000\n", out)
}

func TestRootUnsupportedDegreeSucceeds(t *testing.T) {
	out, err := execute(t, "X^3 = 1")
	require.NoError(t, err)
	assert.Contains(t, out, "strictly greater than 2")
}

func TestRootFailurePrintsNothing(t *testing.T) {
	out, err := execute(t, "(1 * 2 + 3 = X")
	assert.ErrorIs(t, err, parser.ErrMissingParenthesis)
	assert.Empty(t, out)

	_, err = execute(t)
	assert.Error(t, err)
}

func TestRootWritesDOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.dot")
	_, err := execute(t, "--dot", path, "X = 2")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph expression")
	assert.Contains(t, string(data), `label="X"`)
}

func TestRootReadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parser:\n  identifier_case: upper\n"), 0o600))

	out, err := execute(t, "--config", path, "x^2 = 4")
	require.NoError(t, err)
	assert.Contains(t, out, "Reduced form: -4 + X^2 = 0")
}
