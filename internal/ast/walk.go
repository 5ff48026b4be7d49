package ast

import "github.com/informitas/stack"

// Walker yields the nodes of a tree depth-first, parent before children and
// left before right. A Walker does not modify the tree and can be restarted.
type Walker struct {
	tree    *Tree
	pending *stack.Stack[NodeID]
}

func (t *Tree) Walk() *Walker {
	w := &Walker{tree: t}
	w.Reset()
	return w
}

// Reset restarts the walk from the root.
func (w *Walker) Reset() {
	w.pending = stack.NewStack[NodeID]()
	if w.tree.root != NoNode {
		w.pending.Push(w.tree.root)
	}
}

func (w *Walker) Next() (NodeID, bool) {
	if w.pending.IsEmpty() {
		return NoNode, false
	}
	id, _ := w.pending.Pop()
	n := w.tree.Node(id)
	if n.Right != NoNode {
		w.pending.Push(n.Right)
	}
	if n.Left != NoNode {
		w.pending.Push(n.Left)
	}
	return id, true
}

type Edge struct {
	From NodeID
	To   NodeID
}

// Edges lists parent to child links in walk order.
func (t *Tree) Edges() []Edge {
	var edges []Edge
	w := t.Walk()
	for id, ok := w.Next(); ok; id, ok = w.Next() {
		n := t.Node(id)
		if n.Left != NoNode {
			edges = append(edges, Edge{From: id, To: n.Left})
		}
		if n.Right != NoNode {
			edges = append(edges, Edge{From: id, To: n.Right})
		}
	}
	return edges
}
