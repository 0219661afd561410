package layout

import (
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// The methods below measure tables the way a browser reports them to
// scripts. Every call lays the table out afresh.

// OuterWidth returns the width of the grid columns cell covers minus the
// cell's own left and right borders. Cells that are not rendered measure 0.
func (le *LayoutEngine) OuterWidth(cell *html.Node) float64 {
	table := dom.Closest(cell, "table")
	if table == nil {
		return 0
	}
	c, ok := le.LayoutTable(table, 0, 0).CellFor(cell)
	if !ok {
		return 0
	}
	return c.Box.Width - c.Box.Border.Left - c.Box.Border.Right
}

// BorderWidths returns the computed left and right border widths of n.
func (le *LayoutEngine) BorderWidths(n *html.Node) (left, right float64) {
	b := styleOf(le.ComputeStyles(n), n).GetBorderWidth()
	return b.Left, b.Right
}

// TableWidth returns the border box width of table.
func (le *LayoutEngine) TableWidth(table *html.Node) float64 {
	return le.LayoutTable(table, 0, 0).Box.Width
}

// ContainerWidth returns the content width of the table's parent.
func (le *LayoutEngine) ContainerWidth(table *html.Node) float64 {
	if table.Parent == nil {
		return le.viewport.width
	}
	return le.ContentWidth(table.Parent)
}
