// Package page loads an HTML document, attaches responsive controllers to
// its tables and keeps them fitted as the viewport changes.
package page

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"rtable/pkg/css"
	"rtable/pkg/dom"
	"rtable/pkg/js"
	"rtable/pkg/layout"
	"rtable/pkg/render"
	"rtable/pkg/resource"
	"rtable/pkg/responsive"
	"rtable/pkg/text"
)

//go:embed presentation.css
var presentationCSS string

var presentation = css.MustParseStylesheet(presentationCSS)

// tableGap separates stacked tables when the page is drawn.
const tableGap = 16

const defaultViewportHeight = 600

// Page is a loaded document with its table controllers. It is not safe
// for concurrent use.
type Page struct {
	doc      *dom.Document
	engine   *layout.LayoutEngine
	fonts    *text.GoFont
	measurer text.Measurer
	fetcher  resource.Fetcher
	log      logrus.FieldLogger

	defaults  responsive.Settings
	allTables bool
	scripts   bool
	height    float64
	listeners []listener

	tables []*responsive.Table
	byNode map[*html.Node]*responsive.Table
}

type listener struct {
	kind responsive.EventKind
	fn   responsive.Listener
}

type Option func(*Page)

// WithAllTables attaches every table, not only those marked data-responsive.
func WithAllTables() Option {
	return func(p *Page) { p.allTables = true }
}

// WithSettings sets the settings the data-* attributes of each table
// overlay. The default is responsive.DefaultSettings.
func WithSettings(s responsive.Settings) Option {
	return func(p *Page) { p.defaults = s }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Page) { p.log = l }
}

// WithMeasurer replaces the Go font metrics used for layout.
func WithMeasurer(m text.Measurer) Option {
	return func(p *Page) { p.measurer = m }
}

// WithListener registers l on every table the page attaches, before its
// initial fit.
func WithListener(kind responsive.EventKind, l responsive.Listener) Option {
	return func(p *Page) { p.listeners = append(p.listeners, listener{kind, l}) }
}

// WithFetcher loads the stylesheets the document links to through f.
// Without a fetcher linked stylesheets are skipped.
func WithFetcher(f resource.Fetcher) Option {
	return func(p *Page) { p.fetcher = f }
}

// WithoutScripts skips the document's inline scripts.
func WithoutScripts() Option {
	return func(p *Page) { p.scripts = false }
}

func WithViewportHeight(h float64) Option {
	return func(p *Page) { p.height = h }
}

// Load parses src, attaches a controller to each responsive table, runs
// the document's scripts and returns the fitted page.
func Load(src string, viewportWidth float64, opts ...Option) (*Page, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	p := &Page{
		log:      discard,
		defaults: responsive.DefaultSettings(),
		scripts:  true,
		height:   defaultViewportHeight,
		byNode:   make(map[*html.Node]*responsive.Table),
	}
	for _, o := range opts {
		o(p)
	}
	if err := p.defaults.Validate(); err != nil {
		return nil, err
	}

	doc, err := dom.Parse(src)
	if err != nil {
		return nil, err
	}
	p.doc = doc

	sheets := []*css.Stylesheet{presentation}
	for i, ref := range doc.Stylesheets {
		src, ok := p.stylesheetText(ref)
		if !ok {
			continue
		}
		sheet, err := css.ParseStylesheet(src)
		if err != nil {
			return nil, fmt.Errorf("stylesheet %d: %w", i, err)
		}
		for _, sel := range sheet.Skipped {
			p.log.WithField("selector", sel).Warn("Unsupported selector ignored.")
		}
		sheets = append(sheets, sheet)
	}

	p.fonts, err = text.NewGoFont()
	if err != nil {
		return nil, err
	}
	if p.measurer == nil {
		p.measurer = p.fonts
	}
	p.engine = layout.NewLayoutEngine(viewportWidth, p.height, p.measurer, sheets...)

	expr := "//table[@data-responsive]"
	if p.allTables {
		expr = "//table"
	}
	nodes, err := dom.Query(doc.Root, expr)
	if err != nil {
		return nil, err
	}
	for i, n := range nodes {
		if _, err := p.Attach(n, nil); err != nil {
			if p.allTables && errors.Is(err, responsive.ErrNoHeader) {
				p.log.WithField("table", label(n, i)).Debug("Table without header skipped.")
				continue
			}
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
	}

	if p.scripts && len(doc.Scripts) > 0 {
		engine := js.New(js.WithHost(scriptHost{p}), js.WithLogger(p.log))
		if err := engine.Execute(doc); err != nil {
			p.log.WithError(err).Warn("Script failed.")
		}
	}
	return p, nil
}

// stylesheetText returns the text of an inline sheet or fetches a linked
// one. A linked sheet that cannot be fetched is logged and skipped.
func (p *Page) stylesheetText(ref dom.Stylesheet) (string, bool) {
	if ref.Href == "" {
		return ref.Text, true
	}
	log := p.log.WithField("href", ref.Href)
	if p.fetcher == nil {
		log.Debug("Linked stylesheet skipped.")
		return "", false
	}
	body, err := resource.FetchCSS(p.fetcher, ref.Href)
	if err != nil {
		log.WithError(err).Warn("Stylesheet fetch failed.")
		return "", false
	}
	return body, true
}

// Attach returns the controller of table, creating it on first use with
// the table's data-* settings and options, a YAML overlay, on top of the
// page defaults. Options are ignored for a table already attached.
func (p *Page) Attach(table *html.Node, options []byte) (*responsive.Table, error) {
	if t, ok := p.byNode[table]; ok {
		return t, nil
	}
	s, err := responsive.SettingsFromAttributes(table, p.defaults)
	if err != nil {
		return nil, err
	}
	if len(options) > 0 {
		if s, err = responsive.DecodeSettings(bytes.NewReader(options), s); err != nil {
			return nil, err
		}
	}
	tableOpts := []responsive.Option{responsive.WithLogger(p.log.WithField("table", label(table, len(p.tables))))}
	for _, l := range p.listeners {
		tableOpts = append(tableOpts, responsive.WithListener(l.kind, l.fn))
	}
	t, err := responsive.New(table, s, p.engine, tableOpts...)
	if err != nil {
		return nil, err
	}
	p.tables = append(p.tables, t)
	p.byNode[table] = t
	return t, nil
}

// label names a table in log output: its id, or its attach index.
func label(table *html.Node, index int) string {
	if id, ok := dom.GetAttribute(table, "id"); ok && id != "" {
		return "#" + id
	}
	return strconv.Itoa(index)
}

// Resize changes the viewport width and runs a fit cycle on every table.
func (p *Page) Resize(width float64) []responsive.FitResult {
	p.engine.SetViewport(width, p.height)
	results := make([]responsive.FitResult, len(p.tables))
	for i, t := range p.tables {
		results[i] = t.Resize(false)
	}
	return results
}

func (p *Page) Viewport() float64 {
	w, _ := p.engine.Viewport()
	return w
}

// Click delivers a click on el to the innermost attached table holding it.
func (p *Page) Click(el *html.Node) bool {
	for n := el; n != nil; n = n.Parent {
		if t, ok := p.byNode[n]; ok {
			return t.HandleClick(el)
		}
	}
	return false
}

// ClickAt clicks whatever element is drawn at (x, y).
func (p *Page) ClickAt(x, y float64) bool {
	for _, info := range p.Layout() {
		if n := info.HitTest(x, y); n != nil {
			return p.Click(n)
		}
	}
	return false
}

// Layout lays out the attached tables in document order, stacked in the
// flow of their containers.
func (p *Page) Layout() []*layout.TableInfo {
	infos := make([]*layout.TableInfo, 0, len(p.tables))
	y := -1.0
	for _, t := range p.tables {
		n := t.Node()
		styles := p.engine.ComputeStyles(n)
		margin := css.BoxEdge{}
		if s, ok := styles[n]; ok {
			margin = s.GetMargin()
		}
		if y < 0 {
			y = contentTop(styles, n.Parent)
		}
		x := margin.Left
		if n.Parent != nil {
			x += p.engine.ContentX(n.Parent)
		}
		info := p.engine.LayoutTable(n, x, y+margin.Top)
		infos = append(infos, info)
		y += margin.Vertical() + info.Box.Height + tableGap
	}
	return infos
}

// contentTop returns the y offset of n's content box, ignoring preceding
// siblings.
func contentTop(styles map[*html.Node]*css.Style, n *html.Node) float64 {
	y := 0.0
	for a := n; a != nil && a.Type == html.ElementNode; a = a.Parent {
		if s, ok := styles[a]; ok {
			y += s.GetMargin().Top + s.GetBorderWidth().Top + s.GetPadding().Top
		}
	}
	return y
}

// Render draws the attached tables into an image as wide as the viewport.
func (p *Page) Render(height int) image.Image {
	r := render.NewRenderer(int(p.Viewport()), height, p.fonts)
	r.Render(p.Layout())
	return r.Image()
}

// HTML serialises the current document.
func (p *Page) HTML() string {
	return dom.Serialize(p.doc.Root)
}

func (p *Page) Document() *dom.Document { return p.doc }

// Tables returns the attached controllers in attach order.
func (p *Page) Tables() []*responsive.Table {
	return append([]*responsive.Table(nil), p.tables...)
}

// scriptHost exposes the page to scripts.
type scriptHost struct {
	*Page
}

func (h scriptHost) Resize(width float64) {
	h.Page.Resize(width)
}
