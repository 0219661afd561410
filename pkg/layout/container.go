package layout

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"rtable/pkg/css"
)

// ContentWidth returns the width of n's content box: its explicit width,
// a percentage of its parent's content width, or the parent's content width
// minus n's margins, borders and padding. max-width caps the result. The
// document itself is as wide as the viewport.
func (le *LayoutEngine) ContentWidth(n *html.Node) float64 {
	return le.contentWidth(le.ComputeStyles(n), n)
}

// ContentX returns the x offset of n's content box from the viewport edge.
func (le *LayoutEngine) ContentX(n *html.Node) float64 {
	styles := le.ComputeStyles(n)
	x := 0.0
	for a := n; a != nil && a.Type == html.ElementNode; a = a.Parent {
		s := styleOf(styles, a)
		x += s.GetMargin().Left + s.GetBorderWidth().Left + s.GetPadding().Left
	}
	return x
}

func (le *LayoutEngine) contentWidth(styles map[*html.Node]*css.Style, n *html.Node) float64 {
	if n == nil || n.Type != html.ElementNode {
		return le.viewport.width
	}
	s := styleOf(styles, n)
	if w, ok := s.GetLength("width"); ok {
		return w
	}
	parent := le.contentWidth(styles, n.Parent)
	if pct, ok := percentage(s, "width"); ok {
		return parent * pct
	}
	avail := parent - s.GetMargin().Horizontal() - s.GetBorderWidth().Horizontal() - s.GetPadding().Horizontal()
	if m, ok := s.GetLength("max-width"); ok && m < avail {
		avail = m
	}
	if avail < 0 {
		return 0
	}
	return avail
}

func percentage(s *css.Style, property string) (float64, bool) {
	v, ok := s.Get(property)
	if !ok || !strings.HasSuffix(v, "%") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil {
		return 0, false
	}
	return f / 100, true
}
