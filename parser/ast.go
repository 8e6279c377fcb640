package parser

import (
	"fmt"

	"github.com/T1mVo/numbat"
)

// Resolver looks up a unit by name, with registry as its one intended
// implementation; kept as an interface here so the parser doesn't
// import registry and registry doesn't need to import parser.
type Resolver interface {
	Resolve(name string) (numbat.Unit, error)
}

// Node is one node of a parsed unit expression.
type Node interface {
	Eval(r Resolver) (numbat.Unit, error)
	String() string
}

// IdentNode resolves a bare unit name (with optional prefix).
type IdentNode struct {
	Symbol string
}

func (n *IdentNode) Eval(r Resolver) (numbat.Unit, error) { return r.Resolve(n.Symbol) }
func (n *IdentNode) String() string                       { return n.Symbol }

// BinaryNode is a '*'/'·' or '/' combination of two unit expressions.
type BinaryNode struct {
	Op    TokenKind
	Left  Node
	Right Node
}

func (n *BinaryNode) Eval(r Resolver) (numbat.Unit, error) {
	left, err := n.Left.Eval(r)
	if err != nil {
		return numbat.Unit{}, fmt.Errorf("left operand: %w", err)
	}
	right, err := n.Right.Eval(r)
	if err != nil {
		return numbat.Unit{}, fmt.Errorf("right operand: %w", err)
	}

	switch n.Op {
	case Multiply:
		return left.Mul(right), nil
	case Divide:
		return left.Mul(numbat.Power(right, numbat.RationalFromInt(-1))), nil
	default:
		return numbat.Unit{}, fmt.Errorf("unsupported binary operator: %v", n.Op)
	}
}

func (n *BinaryNode) String() string {
	op := "*"
	if n.Op == Divide {
		op = "/"
	}
	return fmt.Sprintf("(%s %s %s)", n.Left, op, n.Right)
}

// PowerNode raises Base to a (possibly fractional, possibly negative)
// rational exponent.
type PowerNode struct {
	Base Node
	Exp  numbat.Rational
}

func (n *PowerNode) Eval(r Resolver) (numbat.Unit, error) {
	base, err := n.Base.Eval(r)
	if err != nil {
		return numbat.Unit{}, fmt.Errorf("power base: %w", err)
	}
	return numbat.Power(base, n.Exp), nil
}

func (n *PowerNode) String() string {
	return fmt.Sprintf("%s^%s", n.Base, n.Exp.String())
}

// GroupNode is a parenthesized subexpression.
type GroupNode struct {
	Inner Node
}

func (n *GroupNode) Eval(r Resolver) (numbat.Unit, error) { return n.Inner.Eval(r) }
func (n *GroupNode) String() string                       { return fmt.Sprintf("(%s)", n.Inner) }
