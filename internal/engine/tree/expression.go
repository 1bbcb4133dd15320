package tree

// Expression is an ordered, mutable sequence of nodes forming one slot of
// content. An expression is owned by exactly one node (as a child) or by
// the document root; nodes are never shared between expressions.
type Expression struct {
	nodes []*Node
}

// NewExpression creates an expression holding the given nodes in order.
func NewExpression(nodes ...*Node) *Expression {
	e := &Expression{}
	e.nodes = append(e.nodes, nodes...)
	return e
}

// Len returns the number of nodes in the expression.
func (e *Expression) Len() int { return len(e.nodes) }

// NodeAt returns the node at index i.
func (e *Expression) NodeAt(i int) (*Node, error) {
	if i < 0 || i >= len(e.nodes) {
		return nil, ErrIndexOutOfRange
	}
	return e.nodes[i], nil
}

// Nodes returns a copy of the node sequence. The copy is a read-only
// view: mutating it does not affect the expression.
func (e *Expression) Nodes() []*Node {
	out := make([]*Node, len(e.nodes))
	copy(out, e.nodes)
	return out
}

// Insert places n at index i, shifting later nodes right. Valid insertion
// points are [0, Len()].
func (e *Expression) Insert(i int, n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if i < 0 || i > len(e.nodes) {
		return ErrIndexOutOfRange
	}
	e.nodes = append(e.nodes, nil)
	copy(e.nodes[i+1:], e.nodes[i:])
	e.nodes[i] = n
	return nil
}

// RemoveAt removes and returns the node at index i. Valid indices are
// [0, Len()).
func (e *Expression) RemoveAt(i int) (*Node, error) {
	if i < 0 || i >= len(e.nodes) {
		return nil, ErrIndexOutOfRange
	}
	n := e.nodes[i]
	copy(e.nodes[i:], e.nodes[i+1:])
	e.nodes[len(e.nodes)-1] = nil
	e.nodes = e.nodes[:len(e.nodes)-1]
	return n, nil
}
