// Package dom is the document tree shared by the layout engine, the
// responsive table core and the script engine. Nodes are golang.org/x/net/html
// nodes; this package adds the mutation and lookup helpers the rest of the
// module needs.
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page.
type Document struct {
	Root        *html.Node
	Stylesheets []Stylesheet // <style> and <link rel="stylesheet">, in document order
	Scripts     []string     // text of inline <script> elements, in document order
}

// Stylesheet is either the text of a <style> element or the href of a
// linked stylesheet.
type Stylesheet struct {
	Text string
	Href string
}

// Parse parses an HTML document and collects its stylesheets and inline
// scripts.
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	doc := &Document{Root: root}
	Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.DataAtom {
		case atom.Style:
			doc.Stylesheets = append(doc.Stylesheets, Stylesheet{Text: TextContent(n)})
			return false
		case atom.Link:
			rel, _ := GetAttribute(n, "rel")
			href, ok := GetAttribute(n, "href")
			if ok && href != "" && containsToken(strings.Fields(strings.ToLower(rel)), "stylesheet") {
				doc.Stylesheets = append(doc.Stylesheets, Stylesheet{Href: href})
			}
		case atom.Script:
			if _, external := GetAttribute(n, "src"); !external {
				doc.Scripts = append(doc.Scripts, TextContent(n))
			}
			return false
		}
		return true
	})
	return doc, nil
}

// ParseFragment parses markup in the context of the given element and
// returns the resulting top-level nodes, detached from any parent.
func ParseFragment(src string, context *html.Node) ([]*html.Node, error) {
	if context == nil {
		context = &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return nodes, nil
}

// NewElement creates a detached element with the given tag and attributes
// given as key, value pairs.
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		SetAttribute(n, attrs[i], attrs[i+1])
	}
	return n
}

// IsElement reports whether n is an element, optionally one of the given tags.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if strings.EqualFold(n.Data, t) {
			return true
		}
	}
	return false
}

func GetAttribute(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttribute(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}

func RemoveAttribute(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// FirstElementChild returns the first element child of n, or nil.
func FirstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// PrevElementSibling returns the closest preceding element sibling, or nil.
func PrevElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// NextElementSibling returns the closest following element sibling, or nil.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// InsertBefore inserts newChild into ref's parent immediately before ref.
// If newChild is already in a tree it is detached first.
func InsertBefore(newChild, ref *html.Node) {
	Remove(newChild)
	ref.Parent.InsertBefore(newChild, ref)
}

// AppendChild appends child to parent, detaching it from any previous parent.
func AppendChild(parent, child *html.Node) {
	Remove(child)
	parent.AppendChild(child)
}

// Prepend inserts child as the first child of parent.
func Prepend(parent, child *html.Node) {
	Remove(child)
	parent.InsertBefore(child, parent.FirstChild)
}

// Remove detaches n from its parent. It is a no-op for detached nodes.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceChildren removes every child of n and appends nodes in order.
func ReplaceChildren(n *html.Node, nodes ...*html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	for _, c := range nodes {
		AppendChild(n, c)
	}
}

// ChildNodes returns all children of n, including text nodes.
func ChildNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// CloneNode returns a copy of n. If deep is true, all descendants are
// cloned recursively. The clone has no parent.
func CloneNode(n *html.Node, deep bool) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		clone.Attr = make([]html.Attribute, len(n.Attr))
		copy(clone.Attr, n.Attr)
	}
	if deep {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			clone.AppendChild(CloneNode(c, true))
		}
	}
	return clone
}

// Contains reports whether other is n or one of its descendants.
func Contains(n, other *html.Node) bool {
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// IndexInParent returns the index of n among its parent's element
// children, or -1 if it has no parent.
func IndexInParent(n *html.Node) int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range Children(n.Parent) {
		if c == n {
			return i
		}
	}
	return -1
}

// Closest returns n or its nearest ancestor that is one of the given tags.
func Closest(n *html.Node, tags ...string) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if IsElement(p, tags...) {
			return p
		}
	}
	return nil
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// Hide marks n as not rendered using the hidden attribute.
func Hide(n *html.Node) {
	SetAttribute(n, "hidden", "")
}

func Show(n *html.Node) {
	RemoveAttribute(n, "hidden")
}

func IsHidden(n *html.Node) bool {
	_, ok := GetAttribute(n, "hidden")
	return ok
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}
