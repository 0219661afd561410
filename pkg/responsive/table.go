// Package responsive fits wide HTML tables into narrow containers by
// collapsing columns into rotated labels and expanding them again when
// room allows.
package responsive

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// Table is the controller of one responsive table. It is not safe for
// concurrent use.
type Table struct {
	node      *html.Node
	settings  Settings
	m         Measurer
	log       logrus.FieldLogger
	headerRow *html.Node
	rows      []Row
	matrix    SpanMatrix
	columns   ColumnIndex
	traversal Traversal
	mutator   ColumnMutator
	listeners map[EventKind][]Listener

	minGathered bool
	resizing    bool
	skipFit     bool
}

type Option func(*Table)

// WithLogger sets the logger for column changes. The default discards.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Table) { t.log = l }
}

// WithListener registers l before the initial fit so it sees its events.
func WithListener(kind EventKind, l Listener) Option {
	return func(t *Table) { t.On(kind, l) }
}

// WithoutInitialFit leaves the table untouched until the first Resize.
func WithoutInitialFit() Option {
	return func(t *Table) { t.skipFit = true }
}

// New scans table, marks it processed and runs the initial fit. Nothing
// is modified when an error is returned.
func New(table *html.Node, settings Settings, m Measurer, opts ...Option) (*Table, error) {
	if table == nil || !dom.IsElement(table, "table") {
		name := "<nil>"
		if table != nil {
			name = table.Data
		}
		return nil, fmt.Errorf("%w: got %q", ErrNotTable, name)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	headerRow, headers, rows, err := scanTable(table)
	if err != nil {
		return nil, err
	}
	matrix, err := BuildSpanMatrix(rows)
	if err != nil {
		return nil, err
	}
	columns, err := BuildColumnIndex(headers, rows, matrix)
	if err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)
	t := &Table{
		node:      table,
		settings:  settings,
		m:         m,
		log:       discard,
		headerRow: headerRow,
		rows:      rows,
		matrix:    matrix,
		columns:   columns,
		traversal: NewTraversal(settings.Start, settings.CollapseDirection, len(columns)),
		listeners: make(map[EventKind][]Listener),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.mutator = newMutator(t)

	dom.AddClass(table, ClassProcessed)
	if !t.skipFit {
		t.Resize(false)
	}
	return t, nil
}

// scanTable finds the header row and the body rows. Body rows are rows
// outside thead whose first cell is not a th; the header row is the first
// of the others.
func scanTable(table *html.Node) (*html.Node, []*html.Node, []Row, error) {
	parts, err := dom.Query(table, "./*[self::tr or self::thead or self::tbody or self::tfoot]")
	if err != nil {
		return nil, nil, nil, err
	}
	var trs []*html.Node
	for _, p := range parts {
		if p.Data == "tr" {
			trs = append(trs, p)
			continue
		}
		group, err := dom.Query(p, "./tr")
		if err != nil {
			return nil, nil, nil, err
		}
		trs = append(trs, group...)
	}
	var headerRow *html.Node
	var rows []Row
	for _, tr := range trs {
		first := dom.FirstElementChild(tr)
		if dom.IsElement(tr.Parent, "thead") || dom.IsElement(first, "th") {
			if headerRow == nil {
				headerRow = tr
			}
			continue
		}
		cells, err := dom.Query(tr, "./td")
		if err != nil {
			return nil, nil, nil, err
		}
		rows = append(rows, Row{Node: tr, Cells: cells})
	}
	if headerRow == nil {
		return nil, nil, nil, ErrNoHeader
	}
	headers, err := dom.Query(headerRow, "./th")
	if err != nil {
		return nil, nil, nil, err
	}
	if len(headers) == 0 {
		return nil, nil, nil, ErrNoHeader
	}
	return headerRow, headers, rows, nil
}

// Node returns the table element.
func (t *Table) Node() *html.Node { return t.node }

func (t *Table) Settings() Settings { return t.settings }

// Columns returns the logical columns in header order.
func (t *Table) Columns() ColumnIndex { return t.columns }

// Rows returns the body rows.
func (t *Table) Rows() []Row { return t.rows }

func (t *Table) SpanMatrix() SpanMatrix { return t.matrix }

func (t *Table) Traversal() Traversal { return t.traversal }

// Collapsed returns the indexes of the collapsed columns.
func (t *Table) Collapsed() []int {
	var out []int
	for i, c := range t.columns {
		if c.collapsed {
			out = append(out, i)
		}
	}
	return out
}

// Collapse collapses column i as a user would. Out of range columns and
// columns already collapsed are ignored.
func (t *Table) Collapse(i int) bool {
	if i < 0 || i >= len(t.columns) {
		return false
	}
	return t.collapse(i, false)
}

// Expand expands column i as a user would, offering a collapse trigger.
func (t *Table) Expand(i int) bool {
	if i < 0 || i >= len(t.columns) {
		return false
	}
	return t.expand(i, true, false)
}

func (t *Table) collapse(i int, auto bool) bool {
	if !t.mutator.Collapse(i) {
		return false
	}
	t.log.WithField("column", i).Debug("Collapsed column.")
	t.emit(Event{Kind: EventColumnCollapsed, Column: i, Auto: auto})
	return true
}

func (t *Table) expand(i int, needTrigger, auto bool) bool {
	if !t.mutator.Expand(i, needTrigger) {
		return false
	}
	t.log.WithField("column", i).Debug("Expanded column.")
	t.emit(Event{Kind: EventColumnExpanded, Column: i, Auto: auto})
	return true
}
