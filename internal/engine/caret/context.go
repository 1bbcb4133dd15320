package caret

import "github.com/quillmath/quill/internal/engine/tree"

// The caret is the RenderContext the tree consults while rendering: it
// shows itself inside exactly the one expression it is logically inside.
var _ tree.RenderContext = (*Caret)(nil)

// Encloses implements tree.RenderContext. It re-resolves the path on
// every call so rendering never trusts a stale location.
func (c *Caret) Encloses(expr *tree.Expression) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	enc, err := c.loc.Enclosing()
	return err == nil && enc == expr
}

// InsertionIndex implements tree.RenderContext.
func (c *Caret) InsertionIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Marker implements tree.RenderContext.
func (c *Caret) Marker() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}
