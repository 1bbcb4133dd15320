package tree

import (
	"github.com/google/uuid"
)

// Kind identifies a node variant. The set is closed: adding a variant
// means extending this enumeration, not subclassing.
type Kind uint8

const (
	// KindSymbol is an atomic node holding a single display symbol.
	KindSymbol Kind = iota
	// KindSqrt wraps one expression under a radical.
	KindSqrt
	// KindBracket wraps one expression in fences.
	KindBracket
	// KindSubscript wraps one expression rendered as a subscript.
	KindSubscript
	// KindSuperscript wraps one expression rendered as a superscript.
	KindSuperscript
	// KindLimit wraps one expression as the approach clause of a limit.
	KindLimit
	// KindFraction owns two expressions: numerator and denominator.
	KindFraction
	// KindBigOp is a large operator (sum, product, integral) owning two
	// expressions: lower and upper bound.
	KindBigOp
)

// Arity returns the number of child expressions a variant owns.
func (k Kind) Arity() int {
	switch k {
	case KindSymbol:
		return 0
	case KindSqrt, KindBracket, KindSubscript, KindSuperscript, KindLimit:
		return 1
	case KindFraction, KindBigOp:
		return 2
	default:
		return 0
	}
}

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindSqrt:
		return "sqrt"
	case KindBracket:
		return "bracket"
	case KindSubscript:
		return "subscript"
	case KindSuperscript:
		return "superscript"
	case KindLimit:
		return "limit"
	case KindFraction:
		return "fraction"
	case KindBigOp:
		return "bigop"
	default:
		return "unknown"
	}
}

// Node is a single tree element. A node belongs to exactly one Expression
// at a time; removal is structural deletion, never tombstoning.
type Node struct {
	id       string
	kind     Kind
	symbol   string // display symbol for KindSymbol, operator glyph for KindBigOp
	children []*Expression
}

func newNode(kind Kind, symbol string) *Node {
	n := &Node{
		id:     uuid.New().String(),
		kind:   kind,
		symbol: symbol,
	}
	arity := kind.Arity()
	if arity > 0 {
		n.children = make([]*Expression, arity)
		for i := range n.children {
			n.children[i] = NewExpression()
		}
	}
	return n
}

// NewSymbol creates an atomic node displaying the given symbol.
func NewSymbol(symbol string) *Node { return newNode(KindSymbol, symbol) }

// NewSqrt creates a square-root node with an empty body.
func NewSqrt() *Node { return newNode(KindSqrt, "") }

// NewBracket creates a fenced node with an empty body.
func NewBracket() *Node { return newNode(KindBracket, "") }

// NewSubscript creates a subscript node with an empty script.
func NewSubscript() *Node { return newNode(KindSubscript, "") }

// NewSuperscript creates a superscript node with an empty script.
func NewSuperscript() *Node { return newNode(KindSuperscript, "") }

// NewLimit creates a limit node with an empty approach clause.
func NewLimit() *Node { return newNode(KindLimit, "") }

// NewFraction creates a fraction node with empty numerator and denominator.
func NewFraction() *Node { return newNode(KindFraction, "") }

// NewBigOp creates a large-operator node (e.g. "∑", "∏", "∫") with empty
// lower and upper bounds.
func NewBigOp(glyph string) *Node { return newNode(KindBigOp, glyph) }

// ID returns the node's immutable unique identifier.
func (n *Node) ID() string { return n.id }

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// Symbol returns the display symbol for atomic nodes and the operator
// glyph for big operators. Empty for other variants.
func (n *Node) Symbol() string { return n.symbol }

// ChildCount returns the number of child expressions the node owns.
func (n *Node) ChildCount() int { return len(n.children) }

// HasChildren reports whether the node owns any child expression.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Child returns the child expression at index i.
func (n *Node) Child(i int) (*Expression, error) {
	if i < 0 || i >= len(n.children) {
		return nil, ErrIndexOutOfRange
	}
	return n.children[i], nil
}
