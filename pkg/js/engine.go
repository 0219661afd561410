package js

import (
	"fmt"
	"io"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
	"rtable/pkg/responsive"
)

// Host is the page a script runs in. It owns the table controllers and
// the viewport.
type Host interface {
	// Attach returns the controller for table, creating it on first use.
	// options is a YAML document overlaying the table's settings; it may
	// be empty.
	Attach(table *html.Node, options []byte) (*responsive.Table, error)
	// Resize sets the viewport width and runs a fit cycle on every
	// attached table.
	Resize(width float64)
	// Viewport returns the current viewport width.
	Viewport() float64
	// Click delivers a click on el to the table containing it and reports
	// whether a column changed.
	Click(el *html.Node) bool
}

// Engine executes JavaScript against an HTML document's DOM.
type Engine struct {
	vm   *goja.Runtime
	log  logrus.FieldLogger
	host Host
	dom  *domContext
}

type Option func(*Engine)

// WithLogger sets the logger that receives console output and listener
// failures. The default discards.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithHost enables the responsiveTable and window bindings.
func WithHost(h Host) Option {
	return func(e *Engine) { e.host = h }
}

// New creates a new JS engine with a fresh goja runtime.
func New(opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	e := &Engine{vm: goja.New(), log: discard}
	for _, o := range opts {
		o(e)
	}

	c := &consoleAPI{log: e.log}
	c.register(e.vm)
	return e
}

// Execute runs all scripts from the document against the DOM, in document
// order. It stops at the first script that throws.
func (e *Engine) Execute(doc *dom.Document) error {
	e.bind(doc.Root)
	for i, script := range doc.Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// Run evaluates src against root and returns the exported result.
func (e *Engine) Run(root *html.Node, src string) (interface{}, error) {
	e.bind(root)
	v, err := e.vm.RunString(src)
	if err != nil {
		return nil, err
	}
	return v.Export(), nil
}

func (e *Engine) bind(root *html.Node) {
	if e.dom != nil && e.dom.root == root {
		return
	}
	e.dom = registerDocument(e.vm, root, e.host)
	if e.host != nil {
		registerResponsive(e.dom, e.log)
		registerWindow(e.dom)
	}
}
