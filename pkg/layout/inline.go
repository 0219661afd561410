package layout

import (
	"math"
	"strings"

	"golang.org/x/net/html"

	"rtable/pkg/css"
	"rtable/pkg/dom"
	"rtable/pkg/text"
)

// VerticalTextClass marks content drawn as a single rotated line.
const VerticalTextClass = "js-vertical-text"

type word struct {
	text  string
	width float64
	space float64
	style *css.Style
	node  *html.Node // element holding the text
}

// inlineItem is either a paragraph of words or a vertical label.
type inlineItem struct {
	words    []word
	vertical bool
	label    string
	style    *css.Style
	node     *html.Node
	nowrap   bool
}

type inlineBuilder struct {
	le     *LayoutEngine
	styles map[*html.Node]*css.Style
	items  []inlineItem
	cur    *inlineItem
}

// collectInline flattens the content of a cell into paragraphs and
// vertical labels. Block children and br elements break paragraphs.
func (le *LayoutEngine) collectInline(cell *html.Node, styles map[*html.Node]*css.Style) []inlineItem {
	b := &inlineBuilder{le: le, styles: styles}
	b.children(cell)
	b.flush()
	return b.items
}

func (b *inlineBuilder) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.text(c.Data, n)
		case html.ElementNode:
			b.element(c)
		}
	}
}

func (b *inlineBuilder) element(n *html.Node) {
	s := styleOf(b.styles, n)
	if dom.IsHidden(n) || s.GetDisplay() == "none" {
		return
	}
	if n.Data == "br" {
		b.flush()
		return
	}
	if dom.HasClass(n, VerticalTextClass) {
		b.flush()
		label := text.Normalize(dom.TextContent(n))
		if label != "" {
			b.items = append(b.items, inlineItem{vertical: true, label: label, style: s, node: n})
		}
		return
	}
	if s.GetDisplay() == "block" {
		b.flush()
		b.children(n)
		b.flush()
		return
	}
	b.children(n)
}

func (b *inlineBuilder) text(data string, n *html.Node) {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return
	}
	s := styleOf(b.styles, n)
	if b.cur == nil {
		ws, _ := s.Get("white-space")
		b.cur = &inlineItem{style: s, nowrap: ws == "nowrap" || ws == "pre"}
	}
	size, bold := s.GetFontSize(), s.IsBold()
	space := b.le.text.Width(" ", size, bold)
	for _, f := range fields {
		b.cur.words = append(b.cur.words, word{
			text:  f,
			width: b.le.text.Width(f, size, bold),
			space: space,
			style: s,
			node:  n,
		})
	}
}

func (b *inlineBuilder) flush() {
	if b.cur != nil && len(b.cur.words) > 0 {
		b.items = append(b.items, *b.cur)
	}
	b.cur = nil
}

func (le *LayoutEngine) itemSizes(items []inlineItem) MinMaxSizes {
	var sizes MinMaxSizes
	for _, it := range items {
		var lo, hi float64
		if it.vertical {
			lo = it.style.GetLineHeight()
			hi = lo
		} else {
			for i, w := range it.words {
				lo = math.Max(lo, w.width)
				if i > 0 {
					hi += w.space
				}
				hi += w.width
			}
			if it.nowrap {
				lo = hi
			}
		}
		sizes.MinContentSize = math.Max(sizes.MinContentSize, lo)
		sizes.MaxContentSize = math.Max(sizes.MaxContentSize, hi)
	}
	return sizes
}

type lineWord struct {
	word
	x float64
}

// layoutItems positions items inside a content box of the given width and
// returns the text boxes and the total height used.
func (le *LayoutEngine) layoutItems(items []inlineItem, x, y, width float64, align string) ([]*Box, float64) {
	var boxes []*Box
	top := y
	for _, it := range items {
		if it.vertical {
			lh := it.style.GetLineHeight()
			size := it.style.GetFontSize()
			bold := it.style.IsBold()
			h := le.text.Width(it.label, size, bold)
			boxes = append(boxes, &Box{
				Node:     it.node,
				Style:    it.style,
				X:        x + alignOffset(align, width, lh),
				Y:        y,
				Width:    lh,
				Height:   h,
				Text:     it.label,
				FontSize: size,
				Bold:     bold,
				Vertical: true,
			})
			y += h
			continue
		}
		for _, line := range breakLines(it, width) {
			lineWidth, lh := 0.0, 0.0
			for _, w := range line {
				lineWidth = w.x + w.width
				lh = math.Max(lh, w.style.GetLineHeight())
			}
			off := alignOffset(align, width, lineWidth)
			for _, w := range line {
				size := w.style.GetFontSize()
				boxes = append(boxes, &Box{
					Node:     w.node,
					Style:    w.style,
					X:        x + off + w.x,
					Y:        y,
					Width:    w.width,
					Height:   lh,
					Text:     w.text,
					FontSize: size,
					Bold:     w.style.IsBold(),
				})
			}
			y += lh
		}
	}
	return boxes, y - top
}

// breakLines wraps a paragraph greedily. A word wider than the line gets a
// line of its own.
func breakLines(it inlineItem, width float64) [][]lineWord {
	var lines [][]lineWord
	var line []lineWord
	cursor := 0.0
	for _, w := range it.words {
		x := 0.0
		if len(line) > 0 {
			x = cursor + w.space
		}
		if len(line) > 0 && !it.nowrap && x+w.width > width+0.01 {
			lines = append(lines, line)
			line, x = nil, 0
		}
		line = append(line, lineWord{word: w, x: x})
		cursor = x + w.width
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func alignOffset(align string, avail, used float64) float64 {
	switch align {
	case "center":
		return math.Max(0, (avail-used)/2)
	case "right":
		return math.Max(0, avail-used)
	}
	return 0
}
