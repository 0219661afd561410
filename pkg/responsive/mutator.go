package responsive

import (
	"strconv"

	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// Presentation classes. Stylesheets key on these to draw collapsed columns.
const (
	ClassProcessed         = "js-responsive-table-processed"
	ClassHeadCollapsed     = "js-head-collapsed"
	ClassCellCollapsed     = "js-cell-collapsed"
	ClassCellReplacement   = "js-cell-replacement"
	ClassVerticalText      = "js-vertical-text"
	ClassVerticalTextInner = "js-vertical-text--inner"
)

// ColumnMutator applies collapse and expand decisions to the document.
// Both operations return false and change nothing when the column is
// already in the requested state.
type ColumnMutator interface {
	Collapse(col int) bool
	Expand(col int, needTrigger bool) bool
	// LabelCell is the cell showing the column's label, the one measured
	// for its collapsed width.
	LabelCell(col int) *html.Node
}

func newMutator(t *Table) ColumnMutator {
	h := headerMutator{t: t}
	if t.settings.EmptyHeader {
		return emptyHeaderMutator{h}
	}
	return h
}

// headerMutator keeps the collapsed header in the header row, stretched
// over the body rows with its label rotated.
type headerMutator struct {
	t *Table
}

func (m headerMutator) Collapse(col int) bool {
	c := m.t.columns[col]
	if c.collapsed {
		return false
	}
	m.collapseHeader(c)
	for _, cell := range c.cells {
		dom.AddClass(cell, ClassCellCollapsed)
	}
	return true
}

func (m headerMutator) Expand(col int, needTrigger bool) bool {
	c := m.t.columns[col]
	if !c.collapsed {
		return false
	}
	m.expandHeader(c, needTrigger)
	for _, cell := range c.cells {
		dom.RemoveClass(cell, ClassCellCollapsed)
	}
	return true
}

func (m headerMutator) LabelCell(col int) *html.Node {
	return m.t.columns[col].header
}

func (m headerMutator) collapseHeader(c *Column) {
	th := c.header
	s := m.t.settings
	dom.AddClass(th, ClassHeadCollapsed)
	c.rowspan, c.hasRowspan = dom.GetAttribute(th, "rowspan")
	dom.SetAttribute(th, "rowspan", strconv.Itoa(len(m.t.rows)+1))
	if dom.FirstByClass(th, ClassVerticalText) == nil {
		wrapInner(th)
	}
	removeByClass(th, s.CollapseTriggerClass)
	if dom.FirstByClass(th, s.ExpandTriggerClass) == nil {
		m.t.prependTrigger(th, s.ExpandTriggerClass, s.ExpandTriggerHTML)
	}
	c.collapsed = true
}

func (m headerMutator) expandHeader(c *Column, needTrigger bool) {
	th := c.header
	s := m.t.settings
	dom.RemoveClass(th, ClassHeadCollapsed)
	if c.hasRowspan {
		dom.SetAttribute(th, "rowspan", c.rowspan)
	} else {
		dom.RemoveAttribute(th, "rowspan")
	}
	removeByClass(th, s.ExpandTriggerClass)
	if inner := dom.FirstByClass(th, ClassVerticalTextInner); inner != nil {
		dom.ReplaceChildren(th, dom.ChildNodes(inner)...)
	}
	if needTrigger && dom.FirstByClass(th, s.CollapseTriggerClass) == nil {
		m.t.prependTrigger(th, s.CollapseTriggerClass, s.CollapseTriggerHTML)
	}
	c.collapsed = false
	c.hasCollapsed = false
}

// emptyHeaderMutator hides the collapsed header entirely. An empty
// placeholder keeps its slot in the header row and a copy of the header
// spanning the body rows carries the rotated label.
type emptyHeaderMutator struct {
	headerMutator
}

func (m emptyHeaderMutator) Collapse(col int) bool {
	c := m.t.columns[col]
	if c.collapsed {
		return false
	}
	th := c.header

	placeholder := cloneWithoutIDs(th, false)
	dom.AddClass(placeholder, ClassCellReplacement)
	dom.InsertBefore(placeholder, th)

	m.collapseHeader(c)

	replacement := cloneWithoutIDs(th, true)
	dom.Hide(th)
	dom.AddClass(replacement, ClassCellReplacement)
	dom.SetAttribute(replacement, "rowspan", strconv.Itoa(len(m.t.rows)))

	for _, cell := range c.cells {
		dom.AddClass(cell, ClassCellCollapsed)
	}
	if len(c.cells) > 0 {
		dom.InsertBefore(replacement, c.cells[0])
	}
	return true
}

func (m emptyHeaderMutator) Expand(col int, needTrigger bool) bool {
	c := m.t.columns[col]
	if !c.collapsed {
		return false
	}
	th := c.header
	m.expandHeader(c, needTrigger)

	removeReplacementBefore(th)
	if len(c.cells) > 0 {
		removeReplacementBefore(c.cells[0])
	}
	for _, cell := range c.cells {
		dom.RemoveClass(cell, ClassCellCollapsed)
	}
	dom.Show(th)
	return true
}

func (m emptyHeaderMutator) LabelCell(col int) *html.Node {
	c := m.t.columns[col]
	if c.collapsed && len(c.cells) > 0 {
		if prev := dom.PrevElementSibling(c.cells[0]); prev != nil && dom.HasClass(prev, ClassCellReplacement) {
			return prev
		}
	}
	return c.header
}

func removeReplacementBefore(n *html.Node) {
	if prev := dom.PrevElementSibling(n); prev != nil && dom.HasClass(prev, ClassCellReplacement) {
		dom.Remove(prev)
	}
}

// wrapInner moves the children of th into the vertical label wrapper.
func wrapInner(th *html.Node) {
	outer := dom.NewElement("div", "class", ClassVerticalText)
	inner := dom.NewElement("div", "class", ClassVerticalTextInner)
	for _, c := range dom.ChildNodes(th) {
		dom.AppendChild(inner, c)
	}
	dom.AppendChild(outer, inner)
	dom.AppendChild(th, outer)
}

func removeByClass(n *html.Node, class string) {
	for _, el := range dom.FindByClass(n, class) {
		dom.Remove(el)
	}
}

func cloneWithoutIDs(n *html.Node, deep bool) *html.Node {
	c := dom.CloneNode(n, deep)
	dom.Walk(c, func(el *html.Node) bool {
		if el.Type == html.ElementNode {
			dom.RemoveAttribute(el, "id")
		}
		return true
	})
	return c
}

// prependTrigger inserts the trigger affordance as the first child of th.
// Empty markup disables the affordance.
func (t *Table) prependTrigger(th *html.Node, class, markup string) {
	if markup == "" {
		return
	}
	span := dom.NewElement("span", "class", class)
	if err := dom.SetInnerHTML(span, markup); err != nil {
		t.log.WithError(err).WithField("class", class).Warn("Invalid trigger markup.")
		return
	}
	dom.Prepend(th, span)
}
