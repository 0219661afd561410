package responsive

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

const fiveColumns = `<div id="wrap"><table id="t">
<thead><tr><th>A</th><th>B</th><th>C</th><th>D</th><th>E</th></tr></thead>
<tbody>
<tr><td>a1</td><td>b1</td><td>c1</td><td>d1</td><td>e1</td></tr>
<tr><td>a2</td><td>b2</td><td>c2</td><td>d2</td><td>e2</td></tr>
</tbody>
</table></div>`

func parseTable(t *testing.T, markup string) (*html.Node, *html.Node) {
	t.Helper()
	doc, err := dom.Parse(markup)
	require.NoError(t, err)
	table := dom.FindByID(doc.Root, "t")
	require.NotNil(t, table)
	return doc.Root, table
}

// fakeMeasurer sizes every column from a fixed table of minimum widths; a
// collapsed header, or any cell standing in for one, is collapsedWidth
// wide. Each cell has a border of the given width on both sides.
type fakeMeasurer struct {
	headers   []*html.Node
	index     map[*html.Node]int
	min       []float64
	collapsed float64
	container float64
	border    float64
}

func newFakeMeasurer(t *testing.T, table *html.Node, min []float64, collapsed, container float64) *fakeMeasurer {
	t.Helper()
	headers, err := dom.Query(table, "./thead/tr/th")
	require.NoError(t, err)
	require.Len(t, headers, len(min))
	f := &fakeMeasurer{
		headers:   headers,
		index:     make(map[*html.Node]int),
		min:       append([]float64(nil), min...),
		collapsed: collapsed,
		container: container,
		border:    1,
	}
	for i, h := range headers {
		f.index[h] = i
	}
	return f
}

func (f *fakeMeasurer) width(cell *html.Node) float64 {
	i, ok := f.index[cell]
	if !ok || dom.HasClass(cell, ClassHeadCollapsed) {
		return f.collapsed
	}
	return f.min[i]
}

func (f *fakeMeasurer) OuterWidth(cell *html.Node) float64 {
	return f.width(cell) - 2*f.border
}

func (f *fakeMeasurer) BorderWidths(*html.Node) (float64, float64) {
	return f.border, f.border
}

func (f *fakeMeasurer) TableWidth(*html.Node) float64 {
	total := 0.0
	for _, h := range f.headers {
		total += f.width(h)
	}
	return total
}

func (f *fakeMeasurer) ContainerWidth(*html.Node) float64 {
	return f.container
}

func newTable(t *testing.T, markup string, settings Settings, min []float64, container float64, opts ...Option) (*Table, *fakeMeasurer) {
	t.Helper()
	_, node := parseTable(t, markup)
	m := newFakeMeasurer(t, node, min, 30, container)
	tbl, err := New(node, settings, m, opts...)
	require.NoError(t, err)
	return tbl, m
}

var fiveMins = []float64{50, 80, 90, 100, 120}
