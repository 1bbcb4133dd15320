package tree

import "strings"

// Placeholder is the reserved token rendered for an empty expression so
// empty slots remain visible and targetable.
const Placeholder = "▢"

// RenderContext tells the tree where the caret currently sits. Rendering
// consults it to splice the caret marker into exactly one expression.
type RenderContext interface {
	// Encloses reports whether expr is the caret's current enclosing
	// expression.
	Encloses(expr *Expression) bool

	// InsertionIndex returns the caret's insertion index within its
	// enclosing expression.
	InsertionIndex() int

	// Marker returns the caret's own rendered marker. Empty output means
	// the caret is present but not visible (unfocused).
	Marker() string
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return markupEscaper.Replace(s) }

// Render produces markup for the expression: each node's fragment in
// order, with the caret marker spliced between fragments at the caret's
// insertion index iff this expression is the caret's enclosing one. An
// expression with no nodes and no visible caret renders the placeholder
// token.
func (e *Expression) Render(ctx RenderContext) string {
	var marker string
	at := -1
	if ctx != nil && ctx.Encloses(e) {
		marker = ctx.Marker()
		if marker != "" {
			at = ctx.InsertionIndex()
		}
	}

	if len(e.nodes) == 0 {
		if marker != "" {
			return marker
		}
		return `<mi data-placeholder="true">` + Placeholder + `</mi>`
	}

	var b strings.Builder
	for i, n := range e.nodes {
		if i == at {
			b.WriteString(marker)
		}
		b.WriteString(n.Render(ctx))
	}
	if at == len(e.nodes) {
		b.WriteString(marker)
	}
	return b.String()
}

// Render produces the node's markup fragment: a variant-specific element
// carrying the node id in a data-node attribute, with each child
// expression rendered recursively into an mrow slot.
func (n *Node) Render(ctx RenderContext) string {
	var b strings.Builder
	switch n.kind {
	case KindSymbol:
		b.WriteString(`<mi data-node="` + n.id + `">`)
		b.WriteString(escape(n.symbol))
		b.WriteString(`</mi>`)
	case KindSqrt:
		n.renderWrapped(&b, "msqrt", ctx)
	case KindBracket:
		n.renderWrapped(&b, "mfenced", ctx)
	case KindSubscript:
		n.renderWrapped(&b, "msub", ctx)
	case KindSuperscript:
		n.renderWrapped(&b, "msup", ctx)
	case KindLimit:
		b.WriteString(`<munder data-node="` + n.id + `"><mo>lim</mo>`)
		n.renderSlot(&b, 0, ctx)
		b.WriteString(`</munder>`)
	case KindFraction:
		b.WriteString(`<mfrac data-node="` + n.id + `">`)
		n.renderSlot(&b, 0, ctx)
		n.renderSlot(&b, 1, ctx)
		b.WriteString(`</mfrac>`)
	case KindBigOp:
		b.WriteString(`<munderover data-node="` + n.id + `"><mo>`)
		b.WriteString(escape(n.symbol))
		b.WriteString(`</mo>`)
		n.renderSlot(&b, 0, ctx)
		n.renderSlot(&b, 1, ctx)
		b.WriteString(`</munderover>`)
	}
	return b.String()
}

func (n *Node) renderWrapped(b *strings.Builder, element string, ctx RenderContext) {
	b.WriteString(`<` + element + ` data-node="` + n.id + `">`)
	n.renderSlot(b, 0, ctx)
	b.WriteString(`</` + element + `>`)
}

func (n *Node) renderSlot(b *strings.Builder, i int, ctx RenderContext) {
	b.WriteString(`<mrow>`)
	b.WriteString(n.children[i].Render(ctx))
	b.WriteString(`</mrow>`)
}
