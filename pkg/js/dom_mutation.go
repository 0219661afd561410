package js

import (
	"github.com/dop251/goja"

	"rtable/pkg/dom"
)

// mutation resolves the tree mutation methods of an element.
func (e *elementAccessor) mutation(key string) (goja.Value, bool) {
	vm := e.ctx.vm
	switch key {
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.ctx.argNode(call, 0, "appendChild")
			if dom.Contains(child, e.node) {
				panic(vm.NewTypeError("Failed to execute 'appendChild': the new child contains the parent"))
			}
			dom.AppendChild(e.node, child)
			return call.Arguments[0]
		}), true
	case "removeChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.ctx.argNode(call, 0, "removeChild")
			if child.Parent != e.node {
				panic(vm.NewTypeError("Failed to execute 'removeChild': the node is not a child of this node"))
			}
			dom.Remove(child)
			return call.Arguments[0]
		}), true
	case "insertBefore":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.ctx.argNode(call, 0, "insertBefore")
			ref := e.ctx.unwrapNode(call.Argument(1))
			if ref == nil {
				dom.AppendChild(e.node, child)
				return call.Arguments[0]
			}
			if ref.Parent != e.node {
				panic(vm.NewTypeError("Failed to execute 'insertBefore': the reference node is not a child of this node"))
			}
			dom.InsertBefore(child, ref)
			return call.Arguments[0]
		}), true
	case "remove":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			dom.Remove(e.node)
			return goja.Undefined()
		}), true
	}
	return nil, false
}
