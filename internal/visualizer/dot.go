// Package visualizer exports an expression tree as a Graphviz digraph.
package visualizer

import (
	"io"
	"strconv"

	"github.com/emicklei/dot"

	"github.com/XJIeI5/computor/internal/ast"
)

// Graph builds one vertex per node, labelled with its payload, and one edge
// per parent to child link.
func Graph(tree *ast.Tree) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.ID("expression")

	nodes := map[ast.NodeID]dot.Node{}
	walker := tree.Walk()
	for id, ok := walker.Next(); ok; id, ok = walker.Next() {
		nodes[id] = g.Node(strconv.Itoa(int(id))).Label(tree.Node(id).Payload.String())
	}
	for _, e := range tree.Edges() {
		g.Edge(nodes[e.From], nodes[e.To])
	}
	return g
}

func WriteDOT(w io.Writer, tree *ast.Tree) error {
	_, err := io.WriteString(w, Graph(tree).String())
	return err
}
