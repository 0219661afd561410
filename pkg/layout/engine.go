// Package layout implements table layout on top of the css cascade and
// provides the width measurements the responsive fitting needs.
package layout

import (
	"golang.org/x/net/html"

	"rtable/pkg/css"
	"rtable/pkg/text"
)

const userAgentCSS = `
body { margin: 8px; }
table { display: table; border-collapse: separate; border-spacing: 2px; }
thead, tbody, tfoot { display: table-row-group; }
tr { display: table-row; }
td, th { display: table-cell; padding: 1px; }
th { font-weight: bold; text-align: center; }
div, p { display: block; }
head, script, style, title { display: none; }
`

var userAgent = css.MustParseStylesheet(userAgentCSS)

type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	stylesheets []*css.Stylesheet
	text        text.Measurer
}

// NewLayoutEngine returns an engine for the given viewport. Sheets are
// applied after the user agent sheet, in order.
func NewLayoutEngine(viewportWidth, viewportHeight float64, m text.Measurer, sheets ...*css.Stylesheet) *LayoutEngine {
	le := &LayoutEngine{text: m}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	le.stylesheets = append([]*css.Stylesheet{userAgent}, sheets...)
	return le
}

// SetViewport changes the viewport size. Media queries and the fallback
// container width follow it.
func (le *LayoutEngine) SetViewport(width, height float64) {
	le.viewport.width = width
	le.viewport.height = height
}

// Viewport returns the current viewport size.
func (le *LayoutEngine) Viewport() (width, height float64) {
	return le.viewport.width, le.viewport.height
}

// ComputeStyles runs the cascade over the whole document containing n. The
// tree is restyled on every call since callers mutate it between layouts.
func (le *LayoutEngine) ComputeStyles(n *html.Node) map[*html.Node]*css.Style {
	return css.ComputeStyles(documentRoot(n), le.stylesheets, le.viewport.width)
}

func documentRoot(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func styleOf(styles map[*html.Node]*css.Style, n *html.Node) *css.Style {
	if s, ok := styles[n]; ok {
		return s
	}
	return css.NewStyle()
}
