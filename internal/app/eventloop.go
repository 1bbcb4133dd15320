package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/quillmath/quill/internal/input"
)

// Run initializes the backend and processes input events until quit is
// requested. Returns ErrQuit on a normal exit.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	app.backend.OnPointer(app.handlePointer)
	app.caret.Focus()
	app.redraw()
	app.logger.Info("editor started")

	for {
		if app.quitting.Load() {
			return ErrQuit
		}

		ev := app.backend.PollEvent()
		if ev == nil {
			return ErrQuit
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			app.handleKey(ev)
		case *tcell.EventMouse:
			app.backend.HandlePointer(ev)
		case *tcell.EventResize:
			app.redraw()
		case *tcell.EventInterrupt:
			app.redraw()
		}
	}
}

// requestRedraw marshals a repaint onto the event loop. Change
// notifications fire on whichever goroutine performed the operation —
// the blink ticker included — so subscribers must not read the tree;
// the render itself happens in Run between events.
func (app *Application) requestRedraw() {
	if app.backend == nil {
		return
	}
	app.backend.Wake()
}

// handleKey routes a key event to the palette when it is open, otherwise
// to the editing dispatcher.
func (app *Application) handleKey(ev *tcell.EventKey) {
	if app.paletteOpen.Load() {
		app.handlePaletteKey(ev)
		return
	}

	kev := input.FromTcell(ev)
	if err := app.dispatcher.Dispatch(kev); err != nil {
		app.logger.Debug("dispatch rejected: %v", err)
	}
}

// handlePointer reacts to pointer events landing on rendered nodes.
func (app *Application) handlePointer(ev *tcell.EventMouse, nodeID string) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	app.logger.Debug("pointer on node %s", nodeID)
	app.caret.Focus()
}

// redraw renders the document with the caret and paints it. Invoked by
// caret change notifications, including blink ticks.
func (app *Application) redraw() {
	if app.backend == nil || !app.running.Load() {
		return
	}
	markup := app.renderer.Render(app.root, app.caret)
	if err := app.backend.Draw(markup); err != nil {
		app.logger.Error("draw failed: %v", err)
		return
	}
	if app.paletteOpen.Load() {
		app.backend.Status(app.paletteLine())
	}
}
