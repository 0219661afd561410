package js

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
)

// newClassListProxy creates a JS DynamicObject implementing the DOMTokenList
// interface for element.classList.
func newClassListProxy(ctx *domContext, node *html.Node) goja.Value {
	return ctx.vm.NewDynamicObject(&classListAccessor{ctx: ctx, node: node})
}

type classListAccessor struct {
	ctx  *domContext
	node *html.Node
}

var classListKeys = []string{"length", "value", "add", "remove", "toggle", "contains", "item", "toString"}

func (cl *classListAccessor) Get(key string) goja.Value {
	vm := cl.ctx.vm
	classes := dom.Classes(cl.node)

	switch key {
	case "length":
		return vm.ToValue(len(classes))
	case "value":
		return vm.ToValue(strings.Join(classes, " "))
	case "add":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			dom.AddClass(cl.node, cl.tokens(call)...)
			return goja.Undefined()
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			dom.RemoveClass(cl.node, cl.tokens(call)...)
			return goja.Undefined()
		})
	case "toggle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				panic(vm.NewTypeError("Failed to execute 'toggle': 1 argument required"))
			}
			token := call.Arguments[0].String()
			if len(call.Arguments) > 1 && !goja.IsUndefined(call.Arguments[1]) {
				if call.Arguments[1].ToBoolean() {
					dom.AddClass(cl.node, token)
					return vm.ToValue(true)
				}
				dom.RemoveClass(cl.node, token)
				return vm.ToValue(false)
			}
			return vm.ToValue(dom.ToggleClass(cl.node, token))
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(dom.HasClass(cl.node, call.Argument(0).String()))
		})
	case "item":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			idx := int(call.Argument(0).ToInteger())
			if idx < 0 || idx >= len(classes) {
				return goja.Null()
			}
			return vm.ToValue(classes[idx])
		})
	case "toString":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(strings.Join(classes, " "))
		})
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(classes) {
		return vm.ToValue(classes[idx])
	}
	return goja.Undefined()
}

func (cl *classListAccessor) Set(key string, val goja.Value) bool {
	if key == "value" {
		dom.SetAttribute(cl.node, "class", val.String())
		return true
	}
	return false
}

func (cl *classListAccessor) Has(key string) bool {
	for _, k := range classListKeys {
		if k == key {
			return true
		}
	}
	idx, err := strconv.Atoi(key)
	return err == nil && idx >= 0 && idx < len(dom.Classes(cl.node))
}

func (cl *classListAccessor) Delete(key string) bool {
	return false
}

func (cl *classListAccessor) Keys() []string {
	return classListKeys
}

// tokens returns the call's arguments as class tokens. Empty tokens and
// tokens containing whitespace are rejected as the DOM does.
func (cl *classListAccessor) tokens(call goja.FunctionCall) []string {
	out := make([]string, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		t := arg.String()
		if t == "" || strings.ContainsAny(t, " \t\n\f\r") {
			panic(cl.ctx.vm.NewTypeError("The token provided ('" + t + "') is not a valid class name"))
		}
		out = append(out, t)
	}
	return out
}
