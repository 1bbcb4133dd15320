// Package render turns the expression tree into markup for the display
// backend. The markup dialect is MathML-flavored XML: the whole document
// is wrapped in a math element so backends can parse it with standard XML
// tooling.
package render

import (
	"github.com/quillmath/quill/internal/engine/caret"
	"github.com/quillmath/quill/internal/engine/tree"
)

// Renderer produces the full-document markup on demand.
type Renderer struct{}

// New creates a renderer.
func New() *Renderer { return &Renderer{} }

// Render produces markup for the whole tree with the live caret spliced
// into its enclosing expression. A nil caret renders the bare tree.
func (r *Renderer) Render(root *tree.Expression, c *caret.Caret) string {
	var ctx tree.RenderContext
	if c != nil {
		ctx = c
	}
	return "<math>" + root.Render(ctx) + "</math>"
}
