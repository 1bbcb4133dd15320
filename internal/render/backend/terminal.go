// Package backend turns rendered markup into on-screen terminal cells.
//
// The backend parses the document markup, lays the expression out as a
// single styled line, and records which screen cells belong to which node
// id so pointer events can be routed back to the tree. The correlations
// are rebuilt on every draw; spans from a previous draw are discarded.
package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beevik/etree"
	"github.com/gdamore/tcell/v2"
)

// ErrElementNotRendered is returned when a visual element is queried
// before any render pass has occurred.
var ErrElementNotRendered = errors.New("element not rendered")

// PointerHandler receives pointer events together with the id of the node
// under the pointer.
type PointerHandler func(ev *tcell.EventMouse, nodeID string)

// span maps one node id to a run of screen cells.
type span struct {
	id     string
	x0, x1 int
	y      int
}

// Terminal displays rendered markup on a tcell screen.
type Terminal struct {
	mu       sync.Mutex
	screen   tcell.Screen
	spans    []span
	rendered bool
	handler  PointerHandler
}

// NewTerminal creates a backend over a real terminal screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewSimulation creates a backend over a simulation screen. Used by tests.
func NewSimulation() *Terminal {
	return &Terminal{screen: tcell.NewSimulationScreen("UTF-8")}
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Fini releases the screen.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the screen dimensions.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// PollEvent blocks for the next input event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Wake posts an interrupt event so a blocked PollEvent returns and the
// event loop can repaint. Safe to call from any goroutine. When the event
// queue is full a wake is already pending, so the post is dropped.
func (t *Terminal) Wake() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// OnPointer registers the handler invoked when a pointer event lands on a
// rendered node.
func (t *Terminal) OnPointer(h PointerHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = h
}

// Draw parses the markup, paints it, and rebuilds the node-id span table.
func (t *Terminal) Draw(markup string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return fmt.Errorf("parsing markup: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	p := &painter{screen: t.screen, x: 1, y: 1}
	if root := doc.Root(); root != nil {
		p.walk(root)
	}
	t.spans = p.spans
	t.rendered = true
	t.screen.Show()
	return nil
}

// Status paints text on the bottom screen row and shows it. Drawing the
// document clears the status; callers repaint it after Draw when needed.
func (t *Terminal) Status(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	y := h - 1
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
	t.screen.Show()
}

// NodeAt returns the id of the innermost node covering the given cell, or
// an empty id when the cell is blank. Querying before the first draw
// fails with ErrElementNotRendered.
func (t *Terminal) NodeAt(x, y int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.rendered {
		return "", ErrElementNotRendered
	}
	// Spans are recorded innermost-first, so the first hit wins.
	for _, s := range t.spans {
		if s.y == y && x >= s.x0 && x <= s.x1 {
			return s.id, nil
		}
	}
	return "", nil
}

// HandlePointer routes a pointer event to the registered handler when it
// lands on a rendered node.
func (t *Terminal) HandlePointer(ev *tcell.EventMouse) {
	x, y := ev.Position()
	id, err := t.NodeAt(x, y)
	if err != nil || id == "" {
		return
	}
	t.mu.Lock()
	handler := t.handler
	t.mu.Unlock()
	if handler != nil {
		handler(ev, id)
	}
}
