package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Classes returns the tokens of n's class attribute.
func Classes(n *html.Node) []string {
	attr, _ := GetAttribute(n, "class")
	if attr == "" {
		return nil
	}
	return strings.Fields(attr)
}

func setClasses(n *html.Node, classes []string) {
	if len(classes) == 0 {
		RemoveAttribute(n, "class")
		return
	}
	SetAttribute(n, "class", strings.Join(classes, " "))
}

func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return containsToken(Classes(n), class)
}

// AddClass adds each class not already present, keeping existing order.
func AddClass(n *html.Node, classes ...string) {
	cls := Classes(n)
	for _, c := range classes {
		if c != "" && !containsToken(cls, c) {
			cls = append(cls, c)
		}
	}
	setClasses(n, cls)
}

func RemoveClass(n *html.Node, classes ...string) {
	cls := Classes(n)
	for _, c := range classes {
		cls = removeToken(cls, c)
	}
	setClasses(n, cls)
}

// ToggleClass adds class if absent and removes it if present. It returns
// whether the class is present afterwards.
func ToggleClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		RemoveClass(n, class)
		return false
	}
	AddClass(n, class)
	return true
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

func removeToken(tokens []string, token string) []string {
	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != token {
			result = append(result, t)
		}
	}
	return result
}
