package responsive

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// Row is a body row and its data cells in document order.
type Row struct {
	Node  *html.Node
	Cells []*html.Node
}

// SpanMatrix records, per body row, one entry per grid position: the
// colspan of the cell starting there, or 0 for a position absorbed by a
// cell to its left. Rows are keyed by node so lookups never depend on
// iteration order.
type SpanMatrix struct {
	rows  map[*html.Node][]int
	width int
}

// BuildSpanMatrix derives the span matrix of rows.
func BuildSpanMatrix(rows []Row) (SpanMatrix, error) {
	m := SpanMatrix{rows: make(map[*html.Node][]int, len(rows))}
	for r, row := range rows {
		var entries []int
		for c, cell := range row.Cells {
			span, err := colspan(cell)
			if err != nil {
				return SpanMatrix{}, fmt.Errorf("row %d, cell %d: %w", r, c, err)
			}
			entries = append(entries, span)
			for k := 1; k < span; k++ {
				entries = append(entries, 0)
			}
		}
		m.rows[row.Node] = entries
		if len(entries) > m.width {
			m.width = len(entries)
		}
	}
	return m, nil
}

// Row returns the entries of a row, nil for rows the matrix was not built from.
func (m SpanMatrix) Row(key *html.Node) []int {
	return m.rows[key]
}

// Width is the length of the longest row.
func (m SpanMatrix) Width() int {
	return m.width
}

// maxColspan is the largest colspan HTML allows.
const maxColspan = 1000

func colspan(cell *html.Node) (int, error) {
	v, ok := dom.GetAttribute(cell, "colspan")
	if !ok {
		return 1, nil
	}
	span, err := strconv.Atoi(v)
	if err != nil || span < 1 || span > maxColspan {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSpan, v)
	}
	return span, nil
}
