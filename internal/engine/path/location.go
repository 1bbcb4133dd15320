// Package path implements the caret location: a chain of links descending
// from the document root to the expression currently being edited.
package path

import (
	"errors"
	"fmt"

	"github.com/quillmath/quill/internal/engine/tree"
)

// ErrEmptyPath is returned when an operation needs an enclosing node but
// the location is already at the document root.
var ErrEmptyPath = errors.New("path is empty")

// Link addresses one descent step: which node of the enclosing expression,
// and which of that node's child expressions.
type Link struct {
	// NodeIndex is the node's index within its enclosing expression.
	NodeIndex int

	// ChildIndex selects which child expression of that node is entered.
	ChildIndex int
}

// String returns a compact representation used in diagnostics.
func (l Link) String() string {
	return fmt.Sprintf("(%d:%d)", l.NodeIndex, l.ChildIndex)
}

// Location is a path of links from a root expression to the expression the
// caret currently edits. An empty path means the caret is at the root.
//
// Resolution is always re-derived from the live tree; the location caches
// nothing, so links stay honest across tree mutations.
type Location struct {
	root  *tree.Expression
	links []Link
}

// NewLocation creates a location at the root of the given expression.
func NewLocation(root *tree.Expression) *Location {
	return &Location{root: root}
}

// Root returns the document root expression.
func (l *Location) Root() *tree.Expression { return l.root }

// AtRoot reports whether the path is empty.
func (l *Location) AtRoot() bool { return len(l.links) == 0 }

// Depth returns the nesting depth (number of links).
func (l *Location) Depth() int { return len(l.links) }

// Links returns a copy of the path.
func (l *Location) Links() []Link {
	out := make([]Link, len(l.links))
	copy(out, l.links)
	return out
}

// MoveInto pushes a link onto the path, descending into the addressed
// child expression.
func (l *Location) MoveInto(nodeIndex, childIndex int) {
	l.links = append(l.links, Link{NodeIndex: nodeIndex, ChildIndex: childIndex})
}

// Pop removes and returns the last link.
func (l *Location) Pop() (Link, error) {
	if len(l.links) == 0 {
		return Link{}, ErrEmptyPath
	}
	last := l.links[len(l.links)-1]
	l.links = l.links[:len(l.links)-1]
	return last, nil
}

// TopLevelLink returns the last link in the path.
func (l *Location) TopLevelLink() (Link, error) {
	if len(l.links) == 0 {
		return Link{}, ErrEmptyPath
	}
	return l.links[len(l.links)-1], nil
}

// Parent returns the link one level shallower than the link at the given
// depth, or false if that link is the first.
func (l *Location) Parent(depth int) (Link, bool) {
	if depth <= 0 || depth >= len(l.links)+1 {
		return Link{}, false
	}
	if depth-1 == 0 {
		return Link{}, false
	}
	return l.links[depth-2], true
}

// Resolve walks the path from the root through the link at the given
// depth (1-based, so depth == Depth() resolves the full path). It returns
// the node addressed by that link and the child expression it leads into.
// Resolution is re-derived on every call since the tree can mutate between
// queries; a link invalidated by a mutation yields tree.ErrIndexOutOfRange.
func (l *Location) Resolve(depth int) (*tree.Node, *tree.Expression, error) {
	if depth < 1 || depth > len(l.links) {
		return nil, nil, ErrEmptyPath
	}

	expr := l.root
	var node *tree.Node
	for i := 0; i < depth; i++ {
		link := l.links[i]
		n, err := expr.NodeAt(link.NodeIndex)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving link %d %s: %w", i, link, err)
		}
		child, err := n.Child(link.ChildIndex)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving link %d %s: %w", i, link, err)
		}
		node = n
		expr = child
	}
	return node, expr, nil
}

// Enclosing returns the expression the location currently addresses: the
// root when the path is empty, otherwise the child expression reached by
// fully resolving the path.
func (l *Location) Enclosing() (*tree.Expression, error) {
	if len(l.links) == 0 {
		return l.root, nil
	}
	_, expr, err := l.Resolve(len(l.links))
	return expr, err
}

// EnclosingNode returns the node addressed by the last link.
func (l *Location) EnclosingNode() (*tree.Node, error) {
	if len(l.links) == 0 {
		return nil, ErrEmptyPath
	}
	node, _, err := l.Resolve(len(l.links))
	return node, err
}
