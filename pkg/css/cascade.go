package css

import (
	"sort"

	"golang.org/x/net/html"
)

// inherited lists the properties that flow from parent to child when the
// child does not set them.
var inherited = []string{"font-size", "font-weight", "font-family", "line-height", "color", "text-align", "white-space"}

type match struct {
	rule  *Rule
	order int
}

// ComputeStyles applies the cascade to every element under root and
// returns the computed style per element. Later sheets win ties with
// earlier ones; inline style attributes win over any rule; !important
// rule declarations win over inline styles.
func ComputeStyles(root *html.Node, sheets []*Stylesheet, viewportWidth float64) map[*html.Node]*Style {
	matches := make(map[*html.Node][]match)
	order := 0
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for i := range sheet.Rules {
			rule := &sheet.Rules[i]
			order++
			if !EvaluateMediaQuery(rule.MediaQuery, viewportWidth) {
				continue
			}
			for _, n := range rule.sel.Select(root) {
				matches[n] = append(matches[n], match{rule: rule, order: order})
			}
		}
	}

	styles := make(map[*html.Node]*Style)
	var visit func(n *html.Node, parent *Style)
	visit = func(n *html.Node, parent *Style) {
		cur := parent
		if n.Type == html.ElementNode {
			cur = computeStyle(n, matches[n], parent)
			styles[n] = cur
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c, cur)
		}
	}
	visit(root, nil)
	return styles
}

func computeStyle(n *html.Node, ms []match, parent *Style) *Style {
	style := NewStyle()
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].rule.Specificity != ms[j].rule.Specificity {
			return ms[i].rule.Specificity < ms[j].rule.Specificity
		}
		return ms[i].order < ms[j].order
	})
	for _, m := range ms {
		for _, d := range m.rule.Declarations {
			if !d.Important {
				style.Set(d.Property, d.Value)
			}
		}
	}
	for _, a := range n.Attr {
		if a.Key == "style" {
			for k, v := range ParseInlineStyle(a.Val).Properties {
				style.Set(k, v)
			}
		}
	}
	for _, m := range ms {
		for _, d := range m.rule.Declarations {
			if d.Important {
				style.Set(d.Property, d.Value)
			}
		}
	}
	if parent != nil {
		for _, p := range inherited {
			if _, ok := style.Get(p); ok {
				continue
			}
			if v, ok := parent.Get(p); ok {
				style.Set(p, v)
			}
		}
	}
	return style
}
