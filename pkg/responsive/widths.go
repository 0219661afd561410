package responsive

import (
	"math"

	"golang.org/x/net/html"
)

// Measurer reports the rendered geometry of a table.
type Measurer interface {
	// OuterWidth is the rendered width of a cell excluding its left and
	// right borders.
	OuterWidth(cell *html.Node) float64
	BorderWidths(cell *html.Node) (left, right float64)
	TableWidth(table *html.Node) float64
	// ContainerWidth is the width available to the table.
	ContainerWidth(table *html.Node) float64
}

func (t *Table) cellWidth(cell *html.Node) float64 {
	l, r := t.m.BorderWidths(cell)
	return t.m.OuterWidth(cell) + l + r
}

// GatherMinWidths measures the header of every expanded column. A
// collapsed column renders narrower than its content, so it keeps the
// minimum cached while it was expanded, or stays unknown.
func (t *Table) GatherMinWidths() {
	for _, c := range t.columns {
		if c.collapsed {
			continue
		}
		c.minWidth = t.cellWidth(c.header)
		c.hasMin = true
	}
	t.minGathered = true
}

// GatherCollapsedWidths measures the visible label of every collapsed
// column and forgets the collapsed width of the others.
func (t *Table) GatherCollapsedWidths() {
	for i, c := range t.columns {
		if !c.collapsed {
			c.hasCollapsed = false
			continue
		}
		c.collapsedWidth = t.cellWidth(t.mutator.LabelCell(i))
		c.hasCollapsed = true
	}
}

// MinWidth returns the cached minimum width of column i.
func (t *Table) MinWidth(i int) (float64, bool) {
	if i < 0 || i >= len(t.columns) {
		return 0, false
	}
	c := t.columns[i]
	return c.minWidth, c.hasMin
}

// CollapsedWidth returns the cached collapsed width of column i. It is
// only known for collapsed columns.
func (t *Table) CollapsedWidth(i int) (float64, bool) {
	if i < 0 || i >= len(t.columns) {
		return 0, false
	}
	c := t.columns[i]
	return c.collapsedWidth, c.collapsed && c.hasCollapsed
}

// PredictedWidth estimates the table width with candidate expanded and
// every other column in its current state. An unknown minimum makes the
// prediction infinite.
func (t *Table) PredictedWidth(candidate int) float64 {
	total := 0.0
	for i, c := range t.columns {
		if i != candidate && c.collapsed && c.hasCollapsed {
			total += c.collapsedWidth
			continue
		}
		if !c.hasMin {
			return math.Inf(1)
		}
		total += c.minWidth
	}
	return total
}
