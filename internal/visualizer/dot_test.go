package visualizer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XJIeI5/computor/internal/ast"
	"github.com/XJIeI5/computor/internal/parser"
	"github.com/XJIeI5/computor/internal/visualizer"
)

func TestWriteDOT(t *testing.T) {
	tree, err := parser.Parse("-X = 2")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, visualizer.WriteDOT(&buf, tree))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph expression {"), out)
	assert.Equal(t, 2, strings.Count(out, `label="-"`))
	assert.Equal(t, 1, strings.Count(out, `label="X"`))
	assert.Equal(t, 1, strings.Count(out, `label="2"`))
	assert.Equal(t, len(tree.Edges()), strings.Count(out, "->"))
}

func TestGraphFollowsEdges(t *testing.T) {
	tree, err := parser.Parse("2 * X^2 = X - 1")
	require.NoError(t, err)

	out := visualizer.Graph(tree).String()
	assert.Equal(t, tree.Len(), strings.Count(out, "label="))
	assert.Equal(t, len(tree.Edges()), strings.Count(out, "->"))
	assert.Equal(t, 2, strings.Count(out, `label="X"`))
}

func TestWriteDOTEmptyTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, visualizer.WriteDOT(&buf, ast.New()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph expression {"), out)
	assert.NotContains(t, out, "label=")
	assert.NotContains(t, out, "->")
}
