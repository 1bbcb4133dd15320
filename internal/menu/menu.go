package menu

import "github.com/quillmath/quill/internal/engine/caret"

// Menu binds a registry to the caret it inserts into.
type Menu struct {
	registry *Registry
	caret    *caret.Caret
}

// New creates a menu over the given registry and caret.
func New(registry *Registry, c *caret.Caret) *Menu {
	return &Menu{registry: registry, caret: c}
}

// Registry returns the menu's entry registry.
func (m *Menu) Registry() *Registry { return m.registry }

// Search returns ranked entries for the query.
func (m *Menu) Search(query string) []Result {
	return m.registry.Search(query)
}

// Select runs the entry with the given canonical code against the caret
// and asks the host to return input focus to the editor.
func (m *Menu) Select(code string) error {
	entry, err := m.registry.Lookup(code)
	if err != nil {
		return err
	}
	if err := entry.Action(m.caret); err != nil {
		return err
	}
	m.caret.RequestHostFocus()
	return nil
}

// SelectFirst runs the best search hit for the query. Empty result sets
// fail with ErrEntryNotFound.
func (m *Menu) SelectFirst(query string) error {
	results := m.Search(query)
	if len(results) == 0 {
		return ErrEntryNotFound
	}
	return m.Select(results[0].Entry.Code)
}
