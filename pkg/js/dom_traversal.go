package js

import (
	"github.com/dop251/goja"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// traversal resolves the tree navigation properties of an element.
func (e *elementAccessor) traversal(key string) (goja.Value, bool) {
	switch key {
	case "parentElement":
		if p := e.node.Parent; dom.IsElement(p) {
			return e.ctx.elementProxy(p), true
		}
		return goja.Null(), true
	case "parentNode":
		if p := e.node.Parent; p != nil && p.Type != html.DocumentNode {
			return e.ctx.elementProxy(p), true
		}
		return goja.Null(), true
	case "children":
		return e.ctx.elementArray(dom.Children(e.node)), true
	case "childElementCount":
		return e.ctx.vm.ToValue(len(dom.Children(e.node))), true
	case "firstElementChild":
		return e.ctx.proxyOrNull(dom.FirstElementChild(e.node)), true
	case "lastElementChild":
		children := dom.Children(e.node)
		if len(children) == 0 {
			return goja.Null(), true
		}
		return e.ctx.elementProxy(children[len(children)-1]), true
	case "nextElementSibling":
		return e.ctx.proxyOrNull(dom.NextElementSibling(e.node)), true
	case "previousElementSibling":
		return e.ctx.proxyOrNull(dom.PrevElementSibling(e.node)), true
	}
	return nil, false
}
