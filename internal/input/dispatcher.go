// Package input maps logical key events onto editor operations. The
// mapping is a fixed table: letters, digits, and a fixed punctuation set
// insert literally; a handful of shorthand keys build compound nodes; the
// arrow keys move the caret; backspace deletes or climbs out of the
// enclosing node depending on position.
package input

import (
	"strings"

	"github.com/quillmath/quill/internal/engine/caret"
	"github.com/quillmath/quill/internal/engine/tree"
	"github.com/quillmath/quill/internal/input/key"
)

// Symbols substituted for typed keys.
const (
	// MultiplySymbol replaces a typed asterisk.
	MultiplySymbol = "×"

	// SpacerSymbol is the placeholder spacer inserted for the space key.
	SpacerSymbol = " "
)

// literalPunct is the fixed punctuation set inserted literally.
const literalPunct = "+-=.,<>!?:;'|%~"

// Dispatcher routes key events to caret operations.
type Dispatcher struct {
	caret    *caret.Caret
	openMenu func()
	quit     func()
}

// NewDispatcher creates a dispatcher driving the given caret.
func NewDispatcher(c *caret.Caret) *Dispatcher {
	return &Dispatcher{caret: c}
}

// OnMenuRequested sets the callback for the open-insertion-menu key.
func (d *Dispatcher) OnMenuRequested(fn func()) { d.openMenu = fn }

// OnQuitRequested sets the callback for the quit chord.
func (d *Dispatcher) OnQuitRequested(fn func()) { d.quit = fn }

// Dispatch maps one key event to its editor operation. Unmapped keys are
// ignored. Precondition violations from the caret (e.g. deleting at the
// start of the document root) abort the single operation and are
// swallowed here: the tree stays in its last valid state.
func (d *Dispatcher) Dispatch(ev key.Event) error {
	if ev.Modifiers.HasCtrl() {
		if ev.Rune == 'q' && d.quit != nil {
			d.quit()
		}
		return nil
	}

	switch ev.Key {
	case key.KeyLeft:
		return d.caret.MoveLeft()
	case key.KeyRight:
		return d.caret.MoveRight()
	case key.KeyUp:
		return d.caret.MoveUp()
	case key.KeyDown:
		return d.caret.MoveDown()
	case key.KeyBackspace:
		return d.deleteOrLeave()
	case key.KeyRune:
		if !ev.IsChar() {
			return nil
		}
		return d.dispatchRune(ev.Rune)
	}
	return nil
}

func (d *Dispatcher) dispatchRune(r rune) error {
	switch r {
	case '*':
		_, err := d.caret.InsertSymbol(MultiplySymbol)
		return err
	case ' ':
		_, err := d.caret.InsertSymbol(SpacerSymbol)
		return err
	case '/':
		return d.insertCompound(tree.NewFraction())
	case '^':
		return d.insertCompound(tree.NewSuperscript())
	case '_':
		return d.insertCompound(tree.NewSubscript())
	case '(':
		return d.insertCompound(tree.NewBracket())
	case ')':
		return d.closeBracket()
	case '\\':
		if d.openMenu != nil {
			d.openMenu()
		}
		return nil
	}

	if isLiteral(r) {
		_, err := d.caret.InsertSymbol(string(r))
		return err
	}
	return nil
}

// insertCompound inserts a node with child slots and descends into its
// first slot from the leading side.
func (d *Dispatcher) insertCompound(n *tree.Node) error {
	idx, err := d.caret.InsertNode(n)
	if err != nil {
		return err
	}
	return d.caret.EnterNode(idx, 0, caret.SideLeading)
}

// deleteOrLeave implements backspace: remove the previous node, or remove
// the enclosing node when at the start of a slot. At the start of the
// document root it does nothing.
func (d *Dispatcher) deleteOrLeave() error {
	if d.caret.Position() > 0 {
		return d.caret.DeleteBackward()
	}
	if d.caret.AtRoot() {
		return nil
	}
	return d.caret.RemoveEnclosingNode()
}

// closeBracket climbs out of the enclosing fence; outside one, the paren
// is inserted literally.
func (d *Dispatcher) closeBracket() error {
	if node, err := d.caret.EnclosingNode(); err == nil && node.Kind() == tree.KindBracket {
		return d.caret.LeaveNode(caret.SideTrailing)
	}
	_, err := d.caret.InsertSymbol(")")
	return err
}

func isLiteral(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
		return true
	}
	return strings.ContainsRune(literalPunct, r)
}
