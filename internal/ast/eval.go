package ast

import (
	"errors"
	"fmt"

	op "github.com/XJIeI5/computor/internal/operation"
)

var (
	ErrUnboundIdentifier = errors.New("unbound identifier")
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrEmptyTree         = errors.New("empty tree")
)

// Eval computes the numeric value of the tree with identifiers replaced by
// their bindings.
func (t *Tree) Eval(bindings map[string]float64) (float64, error) {
	if t.root == NoNode {
		return 0, ErrEmptyTree
	}
	return t.evalAt(t.root, bindings)
}

func (t *Tree) evalAt(id NodeID, bindings map[string]float64) (float64, error) {
	n := t.Node(id)
	if n.Payload.Kind == OperandPayload {
		o := n.Payload.Operand
		if o.IsNumber() {
			return o.Number, nil
		}
		v, ok := bindings[o.Name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnboundIdentifier, o.Name)
		}
		return v, nil
	}

	symbol := string(n.Payload.Operator)
	if n.IsUnary() {
		prefix, ok := op.Prefix(symbol)
		if !ok {
			return 0, fmt.Errorf("%w: prefix %s", ErrUnknownOperator, symbol)
		}
		v, err := t.evalAt(n.Left, bindings)
		if err != nil {
			return 0, err
		}
		return prefix.Apply(v), nil
	}

	binary, ok := op.Binary(symbol)
	if !ok || !n.IsBinary() {
		return 0, fmt.Errorf("%w: %s with %d operands", ErrUnknownOperator, symbol, n.Arity())
	}
	a, err := t.evalAt(n.Left, bindings)
	if err != nil {
		return 0, err
	}
	b, err := t.evalAt(n.Right, bindings)
	if err != nil {
		return 0, err
	}
	res, err := binary.Exec(a, b)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", binary.Name(), err)
	}
	return res, nil
}
