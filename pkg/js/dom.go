package js

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains a node-to-proxy cache so the same JS object is returned for
// the same underlying *html.Node (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	root  *html.Node
	host  Host
	cache map[*html.Node]*goja.Object
	nodes map[*goja.Object]*html.Node
}

func newDOMContext(vm *goja.Runtime, root *html.Node, host Host) *domContext {
	return &domContext{
		vm:    vm,
		root:  root,
		host:  host,
		cache: make(map[*html.Node]*goja.Object),
		nodes: make(map[*goja.Object]*html.Node),
	}
}

// registerDocument sets up the global `document` object on the goja runtime.
func registerDocument(vm *goja.Runtime, root *html.Node, host Host) *domContext {
	ctx := newDOMContext(vm, root, host)

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		return ctx.proxyOrNull(dom.FindByID(root, call.Arguments[0].String()))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(dom.FindByClass(root, call.Arguments[0].String()))
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(elementsByTagName(root, call.Arguments[0].String()))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(dom.NewElement(strings.ToLower(call.Arguments[0].String())))
	})
	registerQuerySelectors(ctx, docObj, root)
	docObj.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.proxyOrNull(firstByTag(root, "body"))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.proxyOrNull(firstByTag(root, "html"))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("document", docObj)
	return ctx
}

// elementsByTagName collects the elements under root with the given tag.
func elementsByTagName(root *html.Node, tag string) []*html.Node {
	var result []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		dom.Walk(c, func(n *html.Node) bool {
			if dom.IsElement(n, tag) || (tag == "*" && dom.IsElement(n)) {
				result = append(result, n)
			}
			return true
		})
	}
	return result
}

func firstByTag(root *html.Node, tag string) *html.Node {
	if nodes := elementsByTagName(root, tag); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// elementArray creates a JS array of Element proxies.
func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	vals := make([]interface{}, len(nodes))
	for i, n := range nodes {
		vals[i] = ctx.elementProxy(n)
	}
	return ctx.vm.NewArray(vals...)
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping an html.Node.
func (ctx *domContext) elementProxy(node *html.Node) *goja.Object {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	ctx.nodes[v] = node
	return v
}

func (ctx *domContext) proxyOrNull(node *html.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	return ctx.elementProxy(node)
}

// unwrapNode extracts the *html.Node behind an element proxy, or nil.
func (ctx *domContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	return ctx.nodes[obj]
}

// argNode unwraps argument i or throws a TypeError naming method.
func (ctx *domContext) argNode(call goja.FunctionCall, i int, method string) *html.Node {
	n := ctx.unwrapNode(call.Argument(i))
	if n == nil {
		panic(ctx.vm.NewTypeError("Failed to execute '" + method + "': parameter " + strconv.Itoa(i+1) + " is not of type 'Node'"))
	}
	return n
}

// elementKeys lists the properties an element proxy exposes.
var elementKeys = []string{
	"nodeType", "nodeName", "tagName", "id", "className", "textContent",
	"innerHTML", "outerHTML",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"parentElement", "parentNode", "children", "childElementCount",
	"firstElementChild", "lastElementChild", "nextElementSibling", "previousElementSibling",
	"appendChild", "removeChild", "insertBefore", "remove",
	"querySelector", "querySelectorAll", "matches", "closest",
	"classList", "contains", "cloneNode",
	"getElementsByTagName", "getElementsByClassName",
	"click",
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on DOM element proxies.
type elementAccessor struct {
	ctx  *domContext
	node *html.Node
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm

	switch key {
	case "nodeType":
		if e.node.Type == html.TextNode {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "nodeName", "tagName":
		if e.node.Type == html.TextNode {
			if key == "tagName" {
				return goja.Undefined()
			}
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(e.node.Data))
	case "id":
		id, _ := dom.GetAttribute(e.node, "id")
		return vm.ToValue(id)
	case "className":
		cls, _ := dom.GetAttribute(e.node, "class")
		return vm.ToValue(cls)
	case "textContent":
		return vm.ToValue(dom.TextContent(e.node))
	case "innerHTML":
		return vm.ToValue(dom.Serialize(e.node))
	case "outerHTML":
		return vm.ToValue(dom.SerializeOuter(e.node))
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			val, ok := dom.GetAttribute(e.node, call.Argument(0).String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				panic(vm.NewTypeError("Failed to execute 'setAttribute': 2 arguments required"))
			}
			dom.SetAttribute(e.node, strings.ToLower(call.Arguments[0].String()), call.Arguments[1].String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			_, ok := dom.GetAttribute(e.node, call.Argument(0).String())
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			dom.RemoveAttribute(e.node, call.Argument(0).String())
			return goja.Undefined()
		})
	case "classList":
		return newClassListProxy(e.ctx, e.node)
	case "click":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			if e.ctx.host != nil {
				e.ctx.host.Click(e.node)
			}
			return goja.Undefined()
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			other := e.ctx.unwrapNode(call.Argument(0))
			return vm.ToValue(other != nil && dom.Contains(e.node, other))
		})
	case "cloneNode":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.ctx.elementProxy(dom.CloneNode(e.node, call.Argument(0).ToBoolean()))
		})
	case "getElementsByTagName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.ctx.elementArray(elementsByTagName(e.node, call.Argument(0).String()))
		})
	case "getElementsByClassName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.ctx.elementArray(dom.FindByClass(e.node, call.Argument(0).String()))
		})
	case "querySelector":
		return vm.ToValue(querySelectorFn(e.ctx, e.node))
	case "querySelectorAll":
		return vm.ToValue(querySelectorAllFn(e.ctx, e.node))
	case "matches":
		return vm.ToValue(matchesFn(e.ctx, e.node))
	case "closest":
		return vm.ToValue(closestFn(e.ctx, e.node))
	}
	if v, ok := e.traversal(key); ok {
		return v
	}
	if v, ok := e.mutation(key); ok {
		return v
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		text := &html.Node{Type: html.TextNode, Data: val.String()}
		if text.Data == "" {
			dom.ReplaceChildren(e.node)
		} else {
			dom.ReplaceChildren(e.node, text)
		}
		return true
	case "className":
		dom.SetAttribute(e.node, "class", val.String())
		return true
	case "id":
		dom.SetAttribute(e.node, "id", val.String())
		return true
	case "innerHTML":
		if err := dom.SetInnerHTML(e.node, val.String()); err != nil {
			panic(e.ctx.vm.NewGoError(err))
		}
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}
