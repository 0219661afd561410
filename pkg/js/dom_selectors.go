package js

import (
	"strings"

	"github.com/dop251/goja"
	selcss "github.com/ericchiang/css"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// registerQuerySelectors adds querySelector/querySelectorAll to a document object.
func registerQuerySelectors(ctx *domContext, obj *goja.Object, root *html.Node) {
	obj.Set("querySelector", querySelectorFn(ctx, root))
	obj.Set("querySelectorAll", querySelectorAllFn(ctx, root))
}

// compileGroup parses a comma separated selector list. Invalid selectors
// throw a TypeError in the calling script.
func compileGroup(ctx *domContext, group string) []*selcss.Selector {
	var sels []*selcss.Selector
	for _, part := range strings.Split(group, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			panic(ctx.vm.NewTypeError("'" + group + "' is not a valid selector"))
		}
		sel, err := selcss.Parse(part)
		if err != nil {
			panic(ctx.vm.NewTypeError("'" + group + "' is not a valid selector: " + err.Error()))
		}
		sels = append(sels, sel)
	}
	return sels
}

// selectUnder returns the descendants of root matching any selector, in
// document order and without duplicates.
func selectUnder(root *html.Node, sels []*selcss.Selector) []*html.Node {
	matched := make(map[*html.Node]bool)
	for _, sel := range sels {
		for _, n := range sel.Select(root) {
			if n != root {
				matched[n] = true
			}
		}
	}
	var out []*html.Node
	if len(matched) == 0 {
		return out
	}
	dom.Walk(root, func(n *html.Node) bool {
		if matched[n] {
			out = append(out, n)
		}
		return true
	})
	return out
}

// matchesAny reports whether node is matched by one of sels within its tree.
func matchesAny(node *html.Node, sels []*selcss.Selector) bool {
	top := node
	for top.Parent != nil {
		top = top.Parent
	}
	for _, sel := range sels {
		for _, n := range sel.Select(top) {
			if n == node {
				return true
			}
		}
	}
	return false
}

// querySelectorFn returns a JS function implementing querySelector.
func querySelectorFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'querySelector': 1 argument required"))
		}
		nodes := selectUnder(root, compileGroup(ctx, call.Arguments[0].String()))
		if len(nodes) == 0 {
			return goja.Null()
		}
		return ctx.elementProxy(nodes[0])
	}
}

// querySelectorAllFn returns a JS function implementing querySelectorAll.
func querySelectorAllFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'querySelectorAll': 1 argument required"))
		}
		return ctx.elementArray(selectUnder(root, compileGroup(ctx, call.Arguments[0].String())))
	}
}

// matchesFn returns a JS function implementing element.matches(selector).
func matchesFn(ctx *domContext, node *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'matches': 1 argument required"))
		}
		return ctx.vm.ToValue(matchesAny(node, compileGroup(ctx, call.Arguments[0].String())))
	}
}

// closestFn returns a JS function implementing element.closest(selector).
func closestFn(ctx *domContext, node *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'closest': 1 argument required"))
		}
		sels := compileGroup(ctx, call.Arguments[0].String())
		for cur := node; cur != nil; cur = cur.Parent {
			if dom.IsElement(cur) && matchesAny(cur, sels) {
				return ctx.elementProxy(cur)
			}
		}
		return goja.Null()
	}
}
