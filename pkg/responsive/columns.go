package responsive

import (
	"fmt"

	"golang.org/x/net/html"
)

// Column is one logical column: a header cell and the body cells under it.
type Column struct {
	header    *html.Node
	cells     []*html.Node
	collapsed bool

	minWidth       float64
	hasMin         bool
	collapsedWidth float64
	hasCollapsed   bool

	// rowspan of the header before it was collapsed
	rowspan    string
	hasRowspan bool
}

func (c *Column) Header() *html.Node { return c.header }

// Cells returns the body cells of the column, top to bottom.
func (c *Column) Cells() []*html.Node { return c.cells }

func (c *Column) Collapsed() bool { return c.collapsed }

// ColumnIndex lists the logical columns in header order.
type ColumnIndex []*Column

// BuildColumnIndex assigns body cells to header positions. A header
// spanning s grid positions starting at offset o collects, per row, the
// cell starting at each position o..o+s-1; positions absorbed by a wider
// body cell contribute nothing, nor do positions past the end of a short
// row.
func BuildColumnIndex(headers []*html.Node, rows []Row, m SpanMatrix) (ColumnIndex, error) {
	// starts maps each grid position of a row to the index of the cell
	// starting there, or -1.
	starts := make(map[*html.Node][]int, len(rows))
	for _, row := range rows {
		entries := m.Row(row.Node)
		idx := make([]int, len(entries))
		n := 0
		for pos, e := range entries {
			idx[pos] = -1
			if e > 0 {
				idx[pos] = n
				n++
			}
		}
		starts[row.Node] = idx
	}

	cols := make(ColumnIndex, 0, len(headers))
	offset := 0
	for h, header := range headers {
		span, err := colspan(header)
		if err != nil {
			return nil, fmt.Errorf("header %d: %w", h, err)
		}
		col := &Column{header: header}
		for _, row := range rows {
			idx := starts[row.Node]
			for pos := offset; pos < offset+span && pos < len(idx); pos++ {
				if i := idx[pos]; i >= 0 && i < len(row.Cells) {
					col.cells = append(col.cells, row.Cells[i])
				}
			}
		}
		cols = append(cols, col)
		offset += span
	}
	return cols, nil
}
