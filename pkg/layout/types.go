package layout

import (
	"golang.org/x/net/html"

	"rtable/pkg/css"
)

// Box is a positioned rectangle. Cell boxes are border boxes; text boxes
// hold one line (or one rotated label) of text.
type Box struct {
	Node     *html.Node
	Style    *css.Style
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Padding  css.BoxEdge
	Border   css.BoxEdge
	Children []*Box

	Text     string
	FontSize float64
	Bold     bool
	// Vertical text is drawn rotated 90 degrees counter-clockwise; Width and
	// Height describe the rotated extent.
	Vertical bool
}

// MinMaxSizes are the intrinsic inline sizes of a piece of content.
type MinMaxSizes struct {
	MinContentSize float64 // narrowest without overflow
	MaxContentSize float64 // preferred width without wrapping
}

// TableCell tracks a cell in a table grid.
type TableCell struct {
	Box     *Box
	RowSpan int
	ColSpan int
	RowIdx  int
	ColIdx  int

	sizes      MinMaxSizes
	content    []inlineItem
	textHeight float64
}

// TableInfo is the result of laying out one table.
type TableInfo struct {
	Box            *Box
	Grid           [][]*TableCell
	NumCols        int
	ColumnWidths   []float64
	RowHeights     []float64
	BorderSpacing  float64
	BorderCollapse string

	cells map[*html.Node]*TableCell
}

// CellFor returns the laid out cell for a td or th node.
func (t *TableInfo) CellFor(n *html.Node) (*TableCell, bool) {
	c, ok := t.cells[n]
	return c, ok
}

// CellAt returns the cell covering point (x, y), if any.
func (t *TableInfo) CellAt(x, y float64) (*TableCell, bool) {
	for _, c := range t.cells {
		b := c.Box
		if x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height {
			return c, true
		}
	}
	return nil, false
}

// HitTest returns the element under point (x, y): the element holding the
// text drawn there, else the cell, else nil.
func (t *TableInfo) HitTest(x, y float64) *html.Node {
	c, ok := t.CellAt(x, y)
	if !ok {
		return nil
	}
	for _, tb := range c.Box.Children {
		if tb.Node != nil && x >= tb.X && x < tb.X+tb.Width && y >= tb.Y && y < tb.Y+tb.Height {
			return tb.Node
		}
	}
	return c.Box.Node
}

// spacing is the border-spacing in effect.
func (t *TableInfo) spacing() float64 {
	if t.BorderCollapse == css.BorderCollapseCollapse {
		return 0
	}
	return t.BorderSpacing
}
