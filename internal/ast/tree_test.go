package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XJIeI5/computor/internal/ast"
	op "github.com/XJIeI5/computor/internal/operation"
)

// buildTree builds "(- (* 2 (^ X 2)) 8)", i.e. 2 * X^2 = 8.
func buildTree() (*ast.Tree, map[string]ast.NodeID) {
	t := ast.New()
	ids := map[string]ast.NodeID{}
	ids["2"] = t.AddLeaf(ast.Number(2))
	ids["X"] = t.AddLeaf(ast.Identifier("X"))
	ids["exp"] = t.AddLeaf(ast.Number(2))
	ids["^"] = t.Add(ast.Operator('^'), ids["X"], ids["exp"])
	ids["*"] = t.Add(ast.Operator('*'), ids["2"], ids["^"])
	ids["8"] = t.AddLeaf(ast.Number(8))
	ids["-"] = t.Add(ast.Operator('-'), ids["*"], ids["8"])
	t.SetRoot(ids["-"])
	return t, ids
}

func TestTreeString(t *testing.T) {
	tree, _ := buildTree()
	assert.Equal(t, "(- (* 2 (^ X 2)) 8)", tree.String())
	assert.Equal(t, "", ast.New().String())
}

func TestNodeIdsGrowInConstructionOrder(t *testing.T) {
	tree, ids := buildTree()
	assert.Equal(t, 7, tree.Len())
	for id := ast.NodeID(0); int(id) < tree.Len(); id++ {
		assert.Equal(t, id, tree.Node(id).ID)
	}
	assert.Greater(t, ids["-"], ids["*"])
	assert.Greater(t, ids["*"], ids["^"])
}

func TestNodeArity(t *testing.T) {
	tree := ast.New()
	x := tree.AddLeaf(ast.Identifier("X"))
	neg := tree.Add(ast.Operator('-'), x, ast.NoNode)
	sum := tree.Add(ast.Operator('+'), neg, x)

	assert.True(t, tree.Node(x).IsLeaf())
	assert.Equal(t, 0, tree.Node(x).Arity())
	assert.True(t, tree.Node(neg).IsUnary())
	assert.Equal(t, 1, tree.Node(neg).Arity())
	assert.True(t, tree.Node(sum).IsBinary())
	assert.Equal(t, 2, tree.Node(sum).Arity())
}

func TestAddRejectsForeignChild(t *testing.T) {
	tree := ast.New()
	assert.Panics(t, func() { tree.Add(ast.Operator('-'), 3, ast.NoNode) })
	assert.Panics(t, func() { tree.Node(ast.NoNode) })
}

func TestWalkIsDepthFirst(t *testing.T) {
	tree, ids := buildTree()
	expected := []ast.NodeID{ids["-"], ids["*"], ids["2"], ids["^"], ids["X"], ids["exp"], ids["8"]}

	walker := tree.Walk()
	var got []ast.NodeID
	for id, ok := walker.Next(); ok; id, ok = walker.Next() {
		got = append(got, id)
	}
	assert.Equal(t, expected, got)

	_, ok := walker.Next()
	assert.False(t, ok)

	walker.Reset()
	got = got[:0]
	for id, ok := walker.Next(); ok; id, ok = walker.Next() {
		got = append(got, id)
	}
	assert.Equal(t, expected, got, "walk restarts after Reset")
}

func TestWalkEmptyTree(t *testing.T) {
	_, ok := ast.New().Walk().Next()
	assert.False(t, ok)
}

func TestEdges(t *testing.T) {
	tree, ids := buildTree()
	expected := []ast.Edge{
		{From: ids["-"], To: ids["*"]},
		{From: ids["-"], To: ids["8"]},
		{From: ids["*"], To: ids["2"]},
		{From: ids["*"], To: ids["^"]},
		{From: ids["^"], To: ids["X"]},
		{From: ids["^"], To: ids["exp"]},
	}
	assert.Equal(t, expected, tree.Edges())
	// walking twice leaves the tree untouched
	assert.Equal(t, expected, tree.Edges())
}

func TestSetIsSharedCloneIsNot(t *testing.T) {
	tree, ids := buildTree()
	alias := tree
	clone := tree.Clone()

	require.NoError(t, tree.Set(ids["*"], ast.Operator('/')))
	assert.Equal(t, "(- (/ 2 (^ X 2)) 8)", alias.String())
	assert.Equal(t, "(- (* 2 (^ X 2)) 8)", clone.String())
	assert.False(t, tree.Equal(clone))
}

func TestSetKeepsArity(t *testing.T) {
	tree, ids := buildTree()
	assert.Error(t, tree.Set(ids["*"], ast.Leaf(ast.Number(1))))
	assert.Error(t, tree.Set(ids["8"], ast.Operator('+')))
	require.NoError(t, tree.Set(ids["8"], ast.Leaf(ast.Number(18))))
	assert.Equal(t, "(- (* 2 (^ X 2)) 18)", tree.String())
}

func TestEqualIgnoresIds(t *testing.T) {
	a, _ := buildTree()

	b := ast.New()
	eight := b.AddLeaf(ast.Number(8))
	exp := b.AddLeaf(ast.Number(2))
	x := b.AddLeaf(ast.Identifier("X"))
	pow := b.Add(ast.Operator('^'), x, exp)
	two := b.AddLeaf(ast.Number(2))
	mul := b.Add(ast.Operator('*'), two, pow)
	b.SetRoot(b.Add(ast.Operator('-'), mul, eight))

	assert.True(t, a.Equal(b))
	assert.True(t, ast.New().Equal(ast.New()))
	assert.False(t, a.Equal(ast.New()))
}

func TestEval(t *testing.T) {
	tree, _ := buildTree()

	v, err := tree.Eval(map[string]float64{"X": 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = tree.Eval(map[string]float64{"X": 3})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	_, err = tree.Eval(nil)
	assert.ErrorIs(t, err, ast.ErrUnboundIdentifier)

	_, err = ast.New().Eval(nil)
	assert.ErrorIs(t, err, ast.ErrEmptyTree)
}

func TestEvalUnaryAndErrors(t *testing.T) {
	tree := ast.New()
	x := tree.AddLeaf(ast.Identifier("X"))
	neg := tree.Add(ast.Operator('-'), x, ast.NoNode)
	zero := tree.AddLeaf(ast.Number(0))
	tree.SetRoot(tree.Add(ast.Operator('/'), neg, zero))

	_, err := tree.Eval(map[string]float64{"X": 1})
	assert.ErrorIs(t, err, op.ErrZeroDivision)

	tree.SetRoot(neg)
	v, err := tree.Eval(map[string]float64{"X": 4})
	require.NoError(t, err)
	assert.Equal(t, -4.0, v)

	require.NoError(t, tree.Set(neg, ast.Operator('*')))
	_, err = tree.Eval(map[string]float64{"X": 4})
	assert.ErrorIs(t, err, ast.ErrUnknownOperator)
}
