package responsive

import (
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// ColumnFromTrigger resolves the column a trigger element belongs to. A
// trigger inside a replacement label in the body resolves to the column
// whose first cell follows that label; a trigger in the header row counts
// the header cells before it, skipping placeholders.
func (t *Table) ColumnFromTrigger(el *html.Node) (int, bool) {
	th := dom.Closest(el, "th")
	if th == nil || th.Parent == nil || !dom.Contains(t.node, th) {
		return NoColumn, false
	}
	row := th.Parent
	if t.isBodyRow(row) {
		for i, c := range t.columns {
			if len(c.cells) > 0 && dom.PrevElementSibling(c.cells[0]) == th {
				return i, true
			}
		}
		return NoColumn, false
	}
	if row != t.headerRow {
		return NoColumn, false
	}
	idx := 0
	for _, sib := range dom.Children(row) {
		if sib == th {
			break
		}
		if !dom.HasClass(sib, ClassCellReplacement) {
			idx++
		}
	}
	if idx >= len(t.columns) {
		return NoColumn, false
	}
	return idx, true
}

// ExpandTrigger expands the column of an activated expand trigger and
// offers a collapse trigger in its place.
func (t *Table) ExpandTrigger(el *html.Node) bool {
	col, ok := t.ColumnFromTrigger(el)
	if !ok {
		return false
	}
	return t.expand(col, true, false)
}

// CollapseTrigger collapses the column of an activated collapse trigger.
func (t *Table) CollapseTrigger(el *html.Node) bool {
	col, ok := t.ColumnFromTrigger(el)
	if !ok {
		return false
	}
	return t.collapse(col, false)
}

// HandleClick routes a click on any element of the table to the trigger
// it landed in, if any. It reports whether a column changed.
func (t *Table) HandleClick(el *html.Node) bool {
	for n := el; n != nil && n != t.node; n = n.Parent {
		switch {
		case dom.HasClass(n, t.settings.ExpandTriggerClass):
			return t.ExpandTrigger(n)
		case dom.HasClass(n, t.settings.CollapseTriggerClass):
			return t.CollapseTrigger(n)
		}
	}
	return false
}

func (t *Table) isBodyRow(row *html.Node) bool {
	for _, r := range t.rows {
		if r.Node == row {
			return true
		}
	}
	return false
}
