package layout

import (
	"math"
	"testing"

	"golang.org/x/net/html"

	"rtable/pkg/css"
	"rtable/pkg/dom"
	"rtable/pkg/text"
)

// Every character is 5px wide at the 10px font size used below.
const baseCSS = `
body { margin: 0; }
table { border-spacing: 0; }
td, th { padding: 0; font-size: 10px; }
`

func newEngine(t *testing.T, markup string, width float64, extraCSS string) (*LayoutEngine, *html.Node) {
	t.Helper()
	doc, err := dom.Parse(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	le := NewLayoutEngine(width, 600, text.Fixed{Ratio: 0.5},
		css.MustParseStylesheet(baseCSS), css.MustParseStylesheet(extraCSS))
	return le, doc.Root
}

func byID(t *testing.T, root *html.Node, id string) *html.Node {
	t.Helper()
	n := dom.FindByID(root, id)
	if n == nil {
		t.Fatalf("no element #%s", id)
	}
	return n
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestLayoutTable_ShrinkToFit(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td>aaaa</td><td>bb</td></tr></table>`, 400, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)

	if info.NumCols != 2 {
		t.Fatalf("NumCols = %d, want 2", info.NumCols)
	}
	if !approx(info.ColumnWidths[0], 20) || !approx(info.ColumnWidths[1], 10) {
		t.Errorf("ColumnWidths = %v, want [20 10]", info.ColumnWidths)
	}
	if !approx(info.Box.Width, 30) {
		t.Errorf("table width = %v, want 30", info.Box.Width)
	}
	if !approx(info.RowHeights[0], 12) {
		t.Errorf("row height = %v, want 12", info.RowHeights[0])
	}
}

func TestLayoutTable_WrapsBetweenMinAndMax(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td id="c">aaaa bbbb cccc</td></tr></table>`, 50, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)

	if !approx(info.ColumnWidths[0], 50) {
		t.Errorf("column width = %v, want 50", info.ColumnWidths[0])
	}
	if !approx(info.RowHeights[0], 24) {
		t.Errorf("row height = %v, want two lines (24)", info.RowHeights[0])
	}
}

func TestLayoutTable_OverflowsAtMinContent(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td>aaaa bbbb</td><td>cc</td></tr></table>`, 10, "")
	table := byID(t, root, "t")

	if w := le.TableWidth(table); !approx(w, 30) {
		t.Errorf("TableWidth = %v, want 30", w)
	}
	if w := le.ContainerWidth(table); !approx(w, 10) {
		t.Errorf("ContainerWidth = %v, want 10", w)
	}
}

func TestLayoutTable_NoWrap(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td>aaaa bbbb</td></tr></table>`, 10, "td { white-space: nowrap; }")
	if w := le.TableWidth(byID(t, root, "t")); !approx(w, 45) {
		t.Errorf("TableWidth = %v, want 45", w)
	}
}

func TestLayoutTable_ColspanSpreadsEvenly(t *testing.T) {
	le, root := newEngine(t, `<table id="t">
<tr><td colspan="2">aaaaaaaa</td></tr>
<tr><td>a</td><td>a</td></tr>
</table>`, 400, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)
	if !approx(info.ColumnWidths[0], 20) || !approx(info.ColumnWidths[1], 20) {
		t.Errorf("ColumnWidths = %v, want [20 20]", info.ColumnWidths)
	}
}

func TestLayoutTable_ColspanClamped(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td colspan="50000000">a</td></tr></table>`, 400, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)
	if info.NumCols != 1000 {
		t.Errorf("NumCols = %d, want 1000", info.NumCols)
	}
}

func TestLayoutTable_RowspanOccupiesGrid(t *testing.T) {
	le, root := newEngine(t, `<table id="t">
<tr><th id="h" rowspan="5">H</th><td>a</td></tr>
<tr><td id="b">b</td></tr>
</table>`, 400, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)

	h, ok := info.CellFor(byID(t, root, "h"))
	if !ok {
		t.Fatal("header cell missing from grid")
	}
	if h.RowSpan != 2 {
		t.Errorf("rowspan should clamp to the rows left, got %d", h.RowSpan)
	}
	b, _ := info.CellFor(byID(t, root, "b"))
	if b.ColIdx != 1 || b.RowIdx != 1 {
		t.Errorf("cell b at (%d,%d), want (1,1)", b.RowIdx, b.ColIdx)
	}
}

func TestLayoutTable_SkipsHiddenCells(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr>
<td id="a">aaaa</td><td id="b" hidden>bbbb</td><td id="c" class="gone">cccc</td><td>d</td>
</tr></table>`, 400, ".gone { display: none; }")
	table := byID(t, root, "t")
	info := le.LayoutTable(table, 0, 0)

	if info.NumCols != 2 {
		t.Errorf("NumCols = %d, want 2", info.NumCols)
	}
	if w := le.OuterWidth(byID(t, root, "b")); w != 0 {
		t.Errorf("hidden cell OuterWidth = %v, want 0", w)
	}
	if _, ok := info.CellFor(byID(t, root, "c")); ok {
		t.Error("display:none cell should not be laid out")
	}
}

func TestLayoutTable_VerticalText(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr>
<th id="h"><div class="js-vertical-text"><div class="js-vertical-text--inner">Label</div></div></th>
</tr></table>`, 400, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)
	if w := le.OuterWidth(byID(t, root, "h")); !approx(w, 12) {
		t.Errorf("vertical header width = %v, want one line height (12)", w)
	}
	if !approx(info.RowHeights[0], 25) {
		t.Errorf("row height = %v, want label width (25)", info.RowHeights[0])
	}
	cell, _ := info.CellFor(byID(t, root, "h"))
	if len(cell.Box.Children) != 1 || !cell.Box.Children[0].Vertical {
		t.Errorf("expected one vertical text box, got %+v", cell.Box.Children)
	}
}

func TestOuterWidth_ExcludesBorders(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td id="c">aaaa</td></tr></table>`, 400,
		"td { border: 2px solid black; }")
	c := byID(t, root, "c")

	if w := le.OuterWidth(c); !approx(w, 20) {
		t.Errorf("OuterWidth = %v, want 20", w)
	}
	l, r := le.BorderWidths(c)
	if l != 2 || r != 2 {
		t.Errorf("BorderWidths = %v, %v; want 2, 2", l, r)
	}
	if w := le.TableWidth(byID(t, root, "t")); !approx(w, 24) {
		t.Errorf("TableWidth = %v, want 24", w)
	}
}

func TestLayoutTable_BorderSpacing(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td>aa</td><td>aa</td></tr></table>`, 400,
		"table { border-spacing: 3px; border: 1px solid black; }")
	if w := le.TableWidth(byID(t, root, "t")); !approx(w, 31) {
		t.Errorf("TableWidth = %v, want 10+10+3*3+2 = 31", w)
	}

	le, root = newEngine(t, `<table id="t"><tr><td>aa</td><td>aa</td></tr></table>`, 400,
		"table { border-spacing: 3px; border-collapse: collapse; }")
	if w := le.TableWidth(byID(t, root, "t")); !approx(w, 20) {
		t.Errorf("collapsed TableWidth = %v, want 20", w)
	}
}

func TestCellAt(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td id="a">aaaa</td><td id="b">bb</td></tr></table>`, 400, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)

	c, ok := info.CellAt(25, 5)
	if !ok || c.Box.Node != byID(t, root, "b") {
		t.Errorf("CellAt(25,5) = %v, %v; want cell b", c, ok)
	}
	if _, ok := info.CellAt(100, 5); ok {
		t.Error("CellAt outside the table should miss")
	}
}

func TestTableInfo_HitTest(t *testing.T) {
	le, root := newEngine(t, `<table id="t"><tr><td id="c"><span id="s">ab</span> cd</td></tr></table>`, 400, "")
	info := le.LayoutTable(byID(t, root, "t"), 0, 0)
	span, cell := byID(t, root, "s"), byID(t, root, "c")

	tests := []struct {
		name string
		x, y float64
		want *html.Node
	}{
		{"span text", 5, 5, span},
		{"cell text", 20, 5, cell},
		{"between words", 12, 5, cell},
		{"outside", 100, 5, nil},
	}
	for _, tt := range tests {
		if got := info.HitTest(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: HitTest(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}
