package dom

import (
	"fmt"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Query returns the nodes under top matching the XPath expression.
func Query(top *html.Node, expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath %q: %w", expr, err)
	}
	return nodes, nil
}

// FindByClass returns the descendants of top (not top itself) carrying class.
func FindByClass(top *html.Node, class string) []*html.Node {
	if class == "" {
		return nil
	}
	return htmlquery.Find(top, ".//*["+classPredicate(class)+"]")
}

// FirstByClass returns the first descendant of top carrying class, or nil.
func FirstByClass(top *html.Node, class string) *html.Node {
	if class == "" {
		return nil
	}
	return htmlquery.FindOne(top, ".//*["+classPredicate(class)+"]")
}

// FindByID returns the first element under top whose id is id, or nil.
func FindByID(top *html.Node, id string) *html.Node {
	return htmlquery.FindOne(top, "//*[@id="+xpathLiteral(id)+"]")
}

func classPredicate(class string) string {
	return "contains(concat(' ', normalize-space(@class), ' '), " + xpathLiteral(" "+class+" ") + ")"
}

// xpathLiteral quotes s as an XPath 1.0 string literal.
func xpathLiteral(s string) string {
	for _, r := range s {
		if r == '\'' {
			return `"` + s + `"`
		}
	}
	return "'" + s + "'"
}
