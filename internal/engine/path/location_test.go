package path

import (
	"errors"
	"testing"

	"github.com/quillmath/quill/internal/engine/tree"
)

// buildDoc returns a root expression [x, frac] and the fraction node.
func buildDoc() (*tree.Expression, *tree.Node) {
	frac := tree.NewFraction()
	root := tree.NewExpression(tree.NewSymbol("x"), frac)
	return root, frac
}

func TestNewLocationAtRoot(t *testing.T) {
	root, _ := buildDoc()
	loc := NewLocation(root)

	if !loc.AtRoot() {
		t.Error("fresh location should be at root")
	}
	if loc.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", loc.Depth())
	}

	enc, err := loc.Enclosing()
	if err != nil {
		t.Fatalf("enclosing: %v", err)
	}
	if enc != root {
		t.Error("enclosing expression at root should be the root itself")
	}
}

func TestMoveIntoAndResolve(t *testing.T) {
	root, frac := buildDoc()
	loc := NewLocation(root)

	loc.MoveInto(1, 0)

	if loc.AtRoot() {
		t.Error("location should no longer be at root")
	}

	node, expr, err := loc.Resolve(1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if node != frac {
		t.Error("resolved node should be the fraction")
	}
	num, _ := frac.Child(0)
	if expr != num {
		t.Error("resolved expression should be the numerator")
	}

	enc, err := loc.Enclosing()
	if err != nil {
		t.Fatalf("enclosing: %v", err)
	}
	if enc != num {
		t.Error("enclosing should be the numerator")
	}

	en, err := loc.EnclosingNode()
	if err != nil {
		t.Fatalf("enclosing node: %v", err)
	}
	if en != frac {
		t.Error("enclosing node should be the fraction")
	}
}

func TestResolveIsRederivedAfterMutation(t *testing.T) {
	root, frac := buildDoc()
	loc := NewLocation(root)
	loc.MoveInto(1, 0)

	// Removing the symbol shifts the fraction to index 1 -> 0; the stale
	// link now addresses the fraction's old slot.
	if _, err := root.RemoveAt(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, _, err := loc.Resolve(1); !errors.Is(err, tree.ErrIndexOutOfRange) {
		t.Errorf("stale link should fail with ErrIndexOutOfRange, got %v", err)
	}

	// And after removing the fraction itself the link dangles entirely.
	if _, err := root.RemoveAt(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_ = frac
	if _, _, err := loc.Resolve(1); !errors.Is(err, tree.ErrIndexOutOfRange) {
		t.Errorf("dangling link should fail with ErrIndexOutOfRange, got %v", err)
	}
}

func TestPop(t *testing.T) {
	root, _ := buildDoc()
	loc := NewLocation(root)
	loc.MoveInto(1, 0)

	link, err := loc.Pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if link.NodeIndex != 1 || link.ChildIndex != 0 {
		t.Errorf("expected link (1:0), got %s", link)
	}
	if !loc.AtRoot() {
		t.Error("location should be back at root")
	}

	if _, err := loc.Pop(); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("pop at root: expected ErrEmptyPath, got %v", err)
	}
}

func TestTopLevelLink(t *testing.T) {
	root, _ := buildDoc()
	loc := NewLocation(root)

	if _, err := loc.TopLevelLink(); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("at root: expected ErrEmptyPath, got %v", err)
	}

	loc.MoveInto(1, 1)
	link, err := loc.TopLevelLink()
	if err != nil {
		t.Fatalf("top level link: %v", err)
	}
	if link.ChildIndex != 1 {
		t.Errorf("expected child index 1, got %d", link.ChildIndex)
	}
}

func TestParent(t *testing.T) {
	frac := tree.NewFraction()
	num, _ := frac.Child(0)
	inner := tree.NewSqrt()
	if err := num.Insert(0, inner); err != nil {
		t.Fatalf("insert: %v", err)
	}
	root := tree.NewExpression(frac)

	loc := NewLocation(root)
	loc.MoveInto(0, 0)
	loc.MoveInto(0, 0)

	parent, ok := loc.Parent(2)
	if !ok {
		t.Fatal("link at depth 2 should have a parent")
	}
	if parent.NodeIndex != 0 || parent.ChildIndex != 0 {
		t.Errorf("expected parent (0:0), got %s", parent)
	}

	if _, ok := loc.Parent(1); ok {
		t.Error("the first link has no parent")
	}
}

func TestLinksIsACopy(t *testing.T) {
	root, _ := buildDoc()
	loc := NewLocation(root)
	loc.MoveInto(1, 0)

	links := loc.Links()
	links[0] = Link{NodeIndex: 99, ChildIndex: 99}

	got, err := loc.TopLevelLink()
	if err != nil {
		t.Fatalf("top level link: %v", err)
	}
	if got.NodeIndex != 1 {
		t.Error("mutating the returned slice must not affect the location")
	}
}

func TestResolveBadDepth(t *testing.T) {
	root, _ := buildDoc()
	loc := NewLocation(root)

	if _, _, err := loc.Resolve(1); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("resolve past depth: expected ErrEmptyPath, got %v", err)
	}
}
