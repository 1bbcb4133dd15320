package render

import (
	"strings"
	"testing"
	"time"

	"github.com/quillmath/quill/internal/engine/caret"
	"github.com/quillmath/quill/internal/engine/tree"
)

func newTestCaret(root *tree.Expression) *caret.Caret {
	return caret.New(root,
		caret.WithBlinkPeriod(time.Hour),
		caret.WithClock(func() time.Time { return time.Unix(0, 0) }),
	)
}

func TestRenderWholeDocument(t *testing.T) {
	root := tree.NewExpression(tree.NewSymbol("x"), tree.NewFraction())
	r := New()

	out := r.Render(root, nil)
	if !strings.HasPrefix(out, "<math>") || !strings.HasSuffix(out, "</math>") {
		t.Errorf("document should be wrapped in a math element, got %q", out)
	}
	if !strings.Contains(out, "<mfrac") {
		t.Errorf("fraction should be rendered, got %q", out)
	}
}

func TestRenderWithCaret(t *testing.T) {
	root := tree.NewExpression(tree.NewSymbol("x"))
	c := newTestCaret(root)
	defer c.Close()
	c.Focus()

	out := New().Render(root, c)
	if !strings.Contains(out, `data-caret="on"`) {
		t.Errorf("focused caret should appear in document markup, got %q", out)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	out := New().Render(tree.NewExpression(), nil)
	if !strings.Contains(out, tree.Placeholder) {
		t.Errorf("empty document should show the placeholder, got %q", out)
	}
}
