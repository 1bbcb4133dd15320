package backend

import (
	"github.com/beevik/etree"
	"github.com/gdamore/tcell/v2"
)

// Cell styles for the linear layout.
var (
	styleText        = tcell.StyleDefault
	styleOperator    = tcell.StyleDefault.Bold(true)
	stylePlaceholder = tcell.StyleDefault.Dim(true)
	styleCaretOn     = tcell.StyleDefault.Reverse(true)
	styleCaretOff    = tcell.StyleDefault.Dim(true)
)

// painter lays markup elements out as a single line of cells, recording a
// span for every element that carries a node id.
type painter struct {
	screen tcell.Screen
	x, y   int
	spans  []span
}

func (p *painter) walk(el *etree.Element) {
	startX := p.x

	switch el.Tag {
	case "math", "mrow":
		p.walkChildren(el)

	case "mi":
		style := styleText
		if el.SelectAttrValue("data-placeholder", "") == "true" {
			style = stylePlaceholder
		}
		p.text(el.Text(), style)

	case "mo":
		if phase := el.SelectAttrValue("data-caret", ""); phase != "" {
			style := styleCaretOn
			if phase == "off" {
				style = styleCaretOff
			}
			p.text(el.Text(), style)
		} else {
			p.text(el.Text(), styleOperator)
		}

	case "mfrac":
		kids := el.ChildElements()
		if len(kids) == 2 {
			p.walk(kids[0])
			p.text("∕", styleOperator)
			p.walk(kids[1])
		}

	case "msqrt":
		p.text("√(", styleOperator)
		p.walkChildren(el)
		p.text(")", styleOperator)

	case "mfenced":
		p.text("(", styleOperator)
		p.walkChildren(el)
		p.text(")", styleOperator)

	case "msub":
		p.text("_{", styleOperator)
		p.walkChildren(el)
		p.text("}", styleOperator)

	case "msup":
		p.text("^{", styleOperator)
		p.walkChildren(el)
		p.text("}", styleOperator)

	case "munder":
		kids := el.ChildElements()
		if len(kids) == 2 {
			p.walk(kids[0])
			p.text("_{", styleOperator)
			p.walk(kids[1])
			p.text("}", styleOperator)
		}

	case "munderover":
		kids := el.ChildElements()
		if len(kids) == 3 {
			p.walk(kids[0])
			p.text("_{", styleOperator)
			p.walk(kids[1])
			p.text("}", styleOperator)
			p.text("^{", styleOperator)
			p.walk(kids[2])
			p.text("}", styleOperator)
		}

	default:
		p.walkChildren(el)
	}

	if id := el.SelectAttrValue("data-node", ""); id != "" && p.x > startX {
		p.spans = append(p.spans, span{id: id, x0: startX, x1: p.x - 1, y: p.y})
	}
}

func (p *painter) walkChildren(el *etree.Element) {
	for _, child := range el.ChildElements() {
		p.walk(child)
	}
}

func (p *painter) text(s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(p.x, p.y, r, nil, style)
		p.x++
	}
}
