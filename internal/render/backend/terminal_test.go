package backend

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/quillmath/quill/internal/engine/tree"
)

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	term := NewSimulation()
	if err := term.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(term.Fini)
	return term
}

func TestNodeAtBeforeFirstDraw(t *testing.T) {
	term := newTestTerminal(t)

	if _, err := term.NodeAt(1, 1); !errors.Is(err, ErrElementNotRendered) {
		t.Errorf("expected ErrElementNotRendered, got %v", err)
	}
}

func TestDrawAndHitTest(t *testing.T) {
	term := newTestTerminal(t)

	sym := tree.NewSymbol("x")
	root := tree.NewExpression(sym)
	if err := term.Draw("<math>" + root.Render(nil) + "</math>"); err != nil {
		t.Fatalf("draw: %v", err)
	}

	// Layout starts at (1,1); the single symbol occupies one cell.
	id, err := term.NodeAt(1, 1)
	if err != nil {
		t.Fatalf("node at: %v", err)
	}
	if id != sym.ID() {
		t.Errorf("expected node id %s, got %s", sym.ID(), id)
	}

	// A blank cell resolves to no node without error.
	id, err = term.NodeAt(40, 1)
	if err != nil {
		t.Fatalf("node at blank cell: %v", err)
	}
	if id != "" {
		t.Errorf("expected no node, got %s", id)
	}
}

func TestHitTestInnermostNode(t *testing.T) {
	term := newTestTerminal(t)

	frac := tree.NewFraction()
	num, _ := frac.Child(0)
	inner := tree.NewSymbol("n")
	num.Insert(0, inner)
	root := tree.NewExpression(frac)

	if err := term.Draw("<math>" + root.Render(nil) + "</math>"); err != nil {
		t.Fatalf("draw: %v", err)
	}

	// The numerator symbol is the first painted cell; the hit must
	// resolve to the symbol, not the enclosing fraction.
	id, err := term.NodeAt(1, 1)
	if err != nil {
		t.Fatalf("node at: %v", err)
	}
	if id != inner.ID() {
		t.Errorf("expected innermost node %s, got %s", inner.ID(), id)
	}
}

func TestSpansRebuiltOnRedraw(t *testing.T) {
	term := newTestTerminal(t)

	first := tree.NewSymbol("a")
	if err := term.Draw("<math>" + tree.NewExpression(first).Render(nil) + "</math>"); err != nil {
		t.Fatalf("draw: %v", err)
	}

	second := tree.NewSymbol("b")
	if err := term.Draw("<math>" + tree.NewExpression(second).Render(nil) + "</math>"); err != nil {
		t.Fatalf("redraw: %v", err)
	}

	id, err := term.NodeAt(1, 1)
	if err != nil {
		t.Fatalf("node at: %v", err)
	}
	if id != second.ID() {
		t.Errorf("stale span survived redraw: got %s, want %s", id, second.ID())
	}
}

func TestHandlePointer(t *testing.T) {
	term := newTestTerminal(t)

	sym := tree.NewSymbol("x")
	if err := term.Draw("<math>" + tree.NewExpression(sym).Render(nil) + "</math>"); err != nil {
		t.Fatalf("draw: %v", err)
	}

	var gotID string
	term.OnPointer(func(_ *tcell.EventMouse, nodeID string) { gotID = nodeID })

	term.HandlePointer(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	if gotID != sym.ID() {
		t.Errorf("expected pointer handler to receive %s, got %q", sym.ID(), gotID)
	}

	// Pointer events on blank cells are not routed.
	gotID = ""
	term.HandlePointer(tcell.NewEventMouse(40, 10, tcell.Button1, tcell.ModNone))
	if gotID != "" {
		t.Errorf("blank cell must not trigger the handler, got %q", gotID)
	}
}

func TestDrawRejectsMalformedMarkup(t *testing.T) {
	term := newTestTerminal(t)

	if err := term.Draw("<math><mi>unclosed</math>"); err == nil {
		t.Error("malformed markup should fail to draw")
	}
}

func TestWakeDeliversInterrupt(t *testing.T) {
	term := newTestTerminal(t)

	term.Wake()

	// Init may queue a resize event ahead of the wake.
	for i := 0; i < 4; i++ {
		if _, ok := term.PollEvent().(*tcell.EventInterrupt); ok {
			return
		}
	}
	t.Fatal("expected an interrupt event after Wake")
}
