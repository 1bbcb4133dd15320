package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/quillmath/quill/internal/menu"
)

// maxPaletteHits is how many ranked matches the status line shows.
const maxPaletteHits = 5

// openPalette activates the insertion palette with an empty query.
func (app *Application) openPalette() {
	app.queryMu.Lock()
	app.query = app.query[:0]
	app.queryMu.Unlock()

	app.paletteOpen.Store(true)
	app.caret.Blur()
	app.redraw()
}

// closePalette deactivates the palette and returns focus to the caret.
func (app *Application) closePalette() {
	if !app.paletteOpen.CompareAndSwap(true, false) {
		return
	}
	app.caret.Focus()
	app.redraw()
}

// handlePaletteKey edits the palette query or resolves it.
func (app *Application) handlePaletteKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		app.closePalette()
		return

	case tcell.KeyEnter:
		app.queryMu.Lock()
		query := string(app.query)
		app.queryMu.Unlock()
		if err := app.menu.SelectFirst(query); err != nil {
			app.logger.Debug("palette: no entry for %q: %v", query, err)
			app.backend.Status(fmt.Sprintf("insert: %s  (no match)", query))
			return
		}
		// SelectFirst requests host focus, which closes the palette.
		return

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		app.queryMu.Lock()
		if len(app.query) > 0 {
			app.query = app.query[:len(app.query)-1]
		}
		app.queryMu.Unlock()

	case tcell.KeyRune:
		app.queryMu.Lock()
		app.query = append(app.query, ev.Rune())
		app.queryMu.Unlock()

	default:
		return
	}

	app.backend.Status(app.paletteLine())
}

// paletteLine formats the palette prompt and its current best matches.
func (app *Application) paletteLine() string {
	app.queryMu.Lock()
	query := string(app.query)
	app.queryMu.Unlock()

	results := app.menu.Search(query)
	if len(results) > maxPaletteHits {
		results = results[:maxPaletteHits]
	}

	names := make([]string, 0, len(results))
	for _, res := range results {
		names = append(names, res.Entry.Name)
	}

	line := "insert: " + query
	if len(names) > 0 {
		line += "  │ " + strings.Join(names, " · ")
	}
	return line
}

// paletteHost exposes the menu registry to palette plugins.
type paletteHost struct {
	registry *menu.Registry
}

// RegisterSymbol adds a plugin-provided symbol to the palette.
func (h *paletteHost) RegisterSymbol(name, code, glyph string, aliases []string) error {
	return h.registry.Register(menu.Entry{
		Name:    name,
		Code:    code,
		Aliases: aliases,
		Action:  menu.SymbolAction(glyph),
	})
}
