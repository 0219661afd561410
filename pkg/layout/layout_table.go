package layout

import (
	"math"
	"sort"
	"strconv"

	"golang.org/x/net/html"

	"rtable/pkg/css"
	"rtable/pkg/dom"
)

// LayoutTable lays out table with its border box at (x, y). Column widths
// follow the automatic table layout: preferred widths when they fit the
// container, minimum widths when even those overflow, and a proportional
// mix in between.
func (le *LayoutEngine) LayoutTable(table *html.Node, x, y float64) *TableInfo {
	styles := le.ComputeStyles(table)
	ts := styleOf(styles, table)
	info := &TableInfo{
		Box: &Box{
			Node:    table,
			Style:   ts,
			X:       x,
			Y:       y,
			Padding: ts.GetPadding(),
			Border:  ts.GetBorderWidth(),
		},
		BorderSpacing:  ts.GetBorderSpacing(),
		BorderCollapse: ts.GetBorderCollapse(),
		cells:          make(map[*html.Node]*TableCell),
	}
	if info.BorderCollapse == css.BorderCollapseCollapse {
		info.Box.Padding = css.BoxEdge{}
	}

	le.buildGrid(info, tableRows(table, styles), styles)

	avail := le.contentWidth(styles, table.Parent) - ts.GetMargin().Horizontal()
	info.ColumnWidths = le.calculateColumnWidths(info, avail)
	info.RowHeights = le.calculateRowHeights(info)
	le.positionTableCells(info)
	return info
}

// tableRows returns the rendered rows of table in document order, looking
// through row groups.
func tableRows(table *html.Node, styles map[*html.Node]*css.Style) []*html.Node {
	var rows []*html.Node
	for _, c := range dom.Children(table) {
		if !rendered(c, styles) {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for _, r := range dom.Children(c) {
				if r.Data == "tr" && rendered(r, styles) {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

func rendered(n *html.Node, styles map[*html.Node]*css.Style) bool {
	return !dom.IsHidden(n) && styleOf(styles, n).GetDisplay() != "none"
}

// maxColspan is the largest colspan HTML honours.
const maxColspan = 1000

func spanAttr(n *html.Node, name string) (int, bool) {
	v, ok := dom.GetAttribute(n, name)
	if !ok {
		return 1, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 1, false
	}
	return i, true
}

func (le *LayoutEngine) buildGrid(info *TableInfo, rows []*html.Node, styles map[*html.Node]*css.Style) {
	grid := make([][]*TableCell, len(rows))
	for rowIdx, row := range rows {
		colIdx := 0
		for _, cellNode := range dom.Children(row) {
			if !dom.IsElement(cellNode, "td", "th") || !rendered(cellNode, styles) {
				continue
			}
			for colIdx < len(grid[rowIdx]) && grid[rowIdx][colIdx] != nil {
				colIdx++
			}

			colspan, _ := spanAttr(cellNode, "colspan")
			if colspan < 1 {
				colspan = 1
			}
			if colspan > maxColspan {
				colspan = maxColspan
			}
			rowspan, set := spanAttr(cellNode, "rowspan")
			if rowspan == 0 && set {
				rowspan = len(rows) - rowIdx
			}
			if rowspan < 1 {
				rowspan = 1
			}
			if rowspan > len(rows)-rowIdx {
				rowspan = len(rows) - rowIdx
			}

			cell := le.newCell(cellNode, styles)
			cell.RowSpan, cell.ColSpan = rowspan, colspan
			cell.RowIdx, cell.ColIdx = rowIdx, colIdx
			info.cells[cellNode] = cell

			for r := 0; r < rowspan; r++ {
				for c := 0; c < colspan; c++ {
					for len(grid[rowIdx+r]) <= colIdx+c {
						grid[rowIdx+r] = append(grid[rowIdx+r], nil)
					}
					grid[rowIdx+r][colIdx+c] = cell
				}
			}
			colIdx += colspan
		}
	}
	info.Grid = grid
	for _, row := range grid {
		if len(row) > info.NumCols {
			info.NumCols = len(row)
		}
	}
}

func (le *LayoutEngine) newCell(n *html.Node, styles map[*html.Node]*css.Style) *TableCell {
	s := styleOf(styles, n)
	cell := &TableCell{
		Box: &Box{
			Node:    n,
			Style:   s,
			Padding: s.GetPadding(),
			Border:  s.GetBorderWidth(),
		},
	}
	cell.content = le.collectInline(n, styles)
	sizes := le.itemSizes(cell.content)
	insets := cell.Box.Padding.Horizontal() + cell.Box.Border.Horizontal()
	sizes.MinContentSize += insets
	sizes.MaxContentSize += insets
	if w, ok := s.GetLength("width"); ok {
		sizes.MinContentSize = math.Max(sizes.MinContentSize, w+insets)
		sizes.MaxContentSize = sizes.MinContentSize
	}
	if w, ok := s.GetLength("min-width"); ok {
		sizes.MinContentSize = math.Max(sizes.MinContentSize, w+insets)
	}
	sizes.MaxContentSize = math.Max(sizes.MaxContentSize, sizes.MinContentSize)
	cell.sizes = sizes
	return cell
}

// calculateColumnWidths resolves column widths. avail is the width the
// table's margin box may occupy.
func (le *LayoutEngine) calculateColumnWidths(info *TableInfo, avail float64) []float64 {
	n := info.NumCols
	if n == 0 {
		return []float64{}
	}
	minW := make([]float64, n)
	maxW := make([]float64, n)

	var spanning []*TableCell
	for _, cell := range info.cells {
		if cell.ColSpan > 1 {
			spanning = append(spanning, cell)
			continue
		}
		minW[cell.ColIdx] = math.Max(minW[cell.ColIdx], cell.sizes.MinContentSize)
		maxW[cell.ColIdx] = math.Max(maxW[cell.ColIdx], cell.sizes.MaxContentSize)
	}
	sort.Slice(spanning, func(i, j int) bool {
		if spanning[i].ColSpan != spanning[j].ColSpan {
			return spanning[i].ColSpan < spanning[j].ColSpan
		}
		if spanning[i].RowIdx != spanning[j].RowIdx {
			return spanning[i].RowIdx < spanning[j].RowIdx
		}
		return spanning[i].ColIdx < spanning[j].ColIdx
	})
	s := info.spacing()
	for _, cell := range spanning {
		last := min(cell.ColIdx+cell.ColSpan, n)
		spread(minW[cell.ColIdx:last], cell.sizes.MinContentSize-s*float64(last-cell.ColIdx-1))
		spread(maxW[cell.ColIdx:last], cell.sizes.MaxContentSize-s*float64(last-cell.ColIdx-1))
	}

	insets := info.Box.Border.Horizontal() + info.Box.Padding.Horizontal() + s*float64(n+1)
	sumMin, sumMax := sum(minW), sum(maxW)
	target := avail - insets
	explicit := false
	if w, ok := info.Box.Style.GetLength("width"); ok {
		target = w - insets
		explicit = true
	}

	widths := make([]float64, n)
	switch {
	case sumMin >= target:
		copy(widths, minW)
	case sumMax <= target && !explicit:
		copy(widths, maxW)
	case sumMax <= target:
		extra := target - sumMax
		for i := range widths {
			if sumMax > 0 {
				widths[i] = maxW[i] + extra*maxW[i]/sumMax
			} else {
				widths[i] = target / float64(n)
			}
		}
	default:
		f := (target - sumMin) / (sumMax - sumMin)
		for i := range widths {
			widths[i] = minW[i] + (maxW[i]-minW[i])*f
		}
	}
	return widths
}

// spread grows cols evenly until together they reach need.
func spread(cols []float64, need float64) {
	have := sum(cols)
	if need <= have || len(cols) == 0 {
		return
	}
	extra := (need - have) / float64(len(cols))
	for i := range cols {
		cols[i] += extra
	}
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}

// cellWidth is the border box width of a cell given resolved columns.
func (info *TableInfo) cellWidth(c *TableCell) float64 {
	w := 0.0
	for i := c.ColIdx; i < c.ColIdx+c.ColSpan && i < info.NumCols; i++ {
		if i > c.ColIdx {
			w += info.spacing()
		}
		w += info.ColumnWidths[i]
	}
	return w
}

func (le *LayoutEngine) calculateRowHeights(info *TableInfo) []float64 {
	heights := make([]float64, len(info.Grid))
	var spanning []*TableCell
	for _, cell := range sortedCells(info) {
		b := cell.Box
		b.Width = info.cellWidth(cell)
		contentWidth := b.Width - b.Padding.Horizontal() - b.Border.Horizontal()
		align, _ := b.Style.Get("text-align")
		boxes, h := le.layoutItems(cell.content, 0, 0, contentWidth, align)
		b.Children = boxes
		cell.textHeight = h
		need := h + b.Padding.Vertical() + b.Border.Vertical()
		if eh, ok := b.Style.GetLength("height"); ok {
			need = math.Max(need, eh+b.Padding.Vertical()+b.Border.Vertical())
		}
		b.Height = need
		if cell.RowSpan > 1 {
			spanning = append(spanning, cell)
			continue
		}
		heights[cell.RowIdx] = math.Max(heights[cell.RowIdx], need)
	}
	s := info.spacing()
	for _, cell := range spanning {
		end := cell.RowIdx + cell.RowSpan
		spread(heights[cell.RowIdx:end], cell.Box.Height-s*float64(cell.RowSpan-1))
	}
	return heights
}

func sortedCells(info *TableInfo) []*TableCell {
	cells := make([]*TableCell, 0, len(info.cells))
	for _, c := range info.cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].RowIdx != cells[j].RowIdx {
			return cells[i].RowIdx < cells[j].RowIdx
		}
		return cells[i].ColIdx < cells[j].ColIdx
	})
	return cells
}

func (le *LayoutEngine) positionTableCells(info *TableInfo) {
	tb := info.Box
	s := info.spacing()

	colX := make([]float64, info.NumCols)
	x := tb.X + tb.Border.Left + tb.Padding.Left + s
	for i, w := range info.ColumnWidths {
		colX[i] = x
		x += w + s
	}
	rowY := make([]float64, len(info.RowHeights))
	y := tb.Y + tb.Border.Top + tb.Padding.Top + s
	for i, h := range info.RowHeights {
		rowY[i] = y
		y += h + s
	}
	tb.Width = sum(info.ColumnWidths) + s*float64(info.NumCols+1) + tb.Border.Horizontal() + tb.Padding.Horizontal()
	tb.Height = sum(info.RowHeights) + s*float64(len(info.RowHeights)+1) + tb.Border.Vertical() + tb.Padding.Vertical()
	tb.Children = nil

	for _, cell := range sortedCells(info) {
		b := cell.Box
		b.X = colX[cell.ColIdx]
		b.Y = rowY[cell.RowIdx]
		b.Height = 0
		for r := cell.RowIdx; r < cell.RowIdx+cell.RowSpan; r++ {
			if r > cell.RowIdx {
				b.Height += s
			}
			b.Height += info.RowHeights[r]
		}
		// Cell content is vertically centred.
		dx := b.X + b.Border.Left + b.Padding.Left
		dy := b.Y + b.Border.Top + b.Padding.Top +
			math.Max(0, (b.Height-b.Padding.Vertical()-b.Border.Vertical()-cell.textHeight)/2)
		for _, c := range b.Children {
			c.X += dx
			c.Y += dy
		}
		tb.Children = append(tb.Children, b)
	}
}
