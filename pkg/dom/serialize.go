package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Serialize returns the innerHTML of n.
func Serialize(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// SerializeOuter returns the outerHTML of n.
func SerializeOuter(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

// SetInnerHTML replaces the children of n with the parsed markup.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := ParseFragment(markup, n)
	if err != nil {
		return err
	}
	ReplaceChildren(n, nodes...)
	return nil
}
