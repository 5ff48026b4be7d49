// Package ast holds the expression tree produced by the parser.
//
// Nodes live in an arena owned by a Tree and refer to their children by
// index. A NodeID is assigned from the arena length at construction time,
// so identifiers grow monotonically with construction order and are only
// meaningful inside the tree that issued them.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

type NodeID int

// NoNode marks an absent child or an empty tree.
const NoNode NodeID = -1

type OperandKind int

const (
	NumberOperand OperandKind = iota
	IdentifierOperand
)

// Operand is a leaf value. New representations get a new OperandKind.
type Operand struct {
	Kind   OperandKind
	Number float64
	Name   string
}

func Number(v float64) Operand       { return Operand{Kind: NumberOperand, Number: v} }
func Identifier(n string) Operand    { return Operand{Kind: IdentifierOperand, Name: n} }
func (o Operand) IsNumber() bool     { return o.Kind == NumberOperand }
func (o Operand) IsIdentifier() bool { return o.Kind == IdentifierOperand }

func (o Operand) String() string {
	if o.Kind == IdentifierOperand {
		return o.Name
	}
	return strconv.FormatFloat(o.Number, 'f', -1, 64)
}

type PayloadKind int

const (
	OperatorPayload PayloadKind = iota
	OperandPayload
)

type Payload struct {
	Kind     PayloadKind
	Operator rune
	Operand  Operand
}

func Operator(r rune) Payload { return Payload{Kind: OperatorPayload, Operator: r} }
func Leaf(o Operand) Payload  { return Payload{Kind: OperandPayload, Operand: o} }

// IsOperator reports whether p is the operator r.
func (p Payload) IsOperator(r rune) bool {
	return p.Kind == OperatorPayload && p.Operator == r
}

func (p Payload) String() string {
	if p.Kind == OperatorPayload {
		return string(p.Operator)
	}
	return p.Operand.String()
}

type Node struct {
	ID      NodeID
	Payload Payload
	Left    NodeID
	Right   NodeID
}

// Arity is the number of children attached to n.
func (n Node) Arity() int {
	arity := 0
	if n.Left != NoNode {
		arity++
	}
	if n.Right != NoNode {
		arity++
	}
	return arity
}

func (n Node) IsLeaf() bool { return n.Left == NoNode && n.Right == NoNode }

// IsUnary reports whether n is a prefix operator applied to its left child.
func (n Node) IsUnary() bool {
	return n.Payload.Kind == OperatorPayload && n.Left != NoNode && n.Right == NoNode
}

// IsBinary reports whether n is an operator node with both children.
func (n Node) IsBinary() bool {
	return n.Payload.Kind == OperatorPayload && n.Left != NoNode && n.Right != NoNode
}

type Tree struct {
	nodes []Node
	root  NodeID
}

func New() *Tree {
	return &Tree{root: NoNode}
}

// Add appends a node to the arena. Children must already belong to t.
func (t *Tree) Add(p Payload, left, right NodeID) NodeID {
	t.mustContain(left)
	t.mustContain(right)
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{ID: id, Payload: p, Left: left, Right: right})
	return id
}

// AddLeaf appends an operand node without children.
func (t *Tree) AddLeaf(o Operand) NodeID {
	return t.Add(Leaf(o), NoNode, NoNode)
}

func (t *Tree) mustContain(id NodeID) {
	if id != NoNode && (id < 0 || int(id) >= len(t.nodes)) {
		panic(fmt.Sprintf("ast: node %d does not belong to the tree", id))
	}
}

func (t *Tree) SetRoot(id NodeID) {
	t.mustContain(id)
	t.root = id
}

func (t *Tree) Root() NodeID { return t.root }
func (t *Tree) Len() int     { return len(t.nodes) }

// Node returns the node stored under id. It panics when id is NoNode or
// was not issued by t.
func (t *Tree) Node(id NodeID) Node {
	if id == NoNode {
		panic("ast: NoNode dereferenced")
	}
	t.mustContain(id)
	return t.nodes[id]
}

// Set rewrites the payload of id in place. The change is visible to every
// holder of t; Clone first to keep the original.
func (t *Tree) Set(id NodeID, p Payload) error {
	n := t.Node(id)
	if p.Kind == OperandPayload && !n.IsLeaf() {
		return fmt.Errorf("ast: node %d has %d children, an operand must be a leaf", id, n.Arity())
	}
	if p.Kind == OperatorPayload && n.IsLeaf() {
		return fmt.Errorf("ast: node %d is a leaf, an operator needs children", id)
	}
	t.nodes[id].Payload = p
	return nil
}

func (t *Tree) Clone() *Tree {
	nodes := make([]Node, len(t.nodes))
	copy(nodes, t.nodes)
	return &Tree{nodes: nodes, root: t.root}
}

// Equal compares the shapes and payloads reachable from both roots.
// Node identifiers are ignored.
func (t *Tree) Equal(other *Tree) bool {
	return t.equalAt(t.root, other, other.root)
}

func (t *Tree) equalAt(a NodeID, other *Tree, b NodeID) bool {
	if a == NoNode || b == NoNode {
		return a == b
	}
	na, nb := t.Node(a), other.Node(b)
	if na.Payload != nb.Payload {
		return false
	}
	return t.equalAt(na.Left, other, nb.Left) && t.equalAt(na.Right, other, nb.Right)
}

// String renders the tree in prefix form, e.g. "(- (* 5 (^ X 2)) 1)".
func (t *Tree) String() string {
	if t.root == NoNode {
		return ""
	}
	var sb strings.Builder
	t.write(&sb, t.root)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n.IsLeaf() {
		sb.WriteString(n.Payload.String())
		return
	}
	sb.WriteString("(")
	sb.WriteString(n.Payload.String())
	for _, child := range []NodeID{n.Left, n.Right} {
		if child == NoNode {
			continue
		}
		sb.WriteString(" ")
		t.write(sb, child)
	}
	sb.WriteString(")")
}
