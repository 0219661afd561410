package js

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"rtable/pkg/responsive"
)

// registerResponsive installs the global responsiveTable(el, options)
// function. Calling it twice for the same table returns the same
// controller object.
func registerResponsive(ctx *domContext, log logrus.FieldLogger) {
	vm := ctx.vm
	controllers := make(map[*responsive.Table]*goja.Object)

	vm.Set("responsiveTable", func(call goja.FunctionCall) goja.Value {
		el := ctx.argNode(call, 0, "responsiveTable")
		opts, err := optionsYAML(call.Argument(1))
		if err != nil {
			panic(vm.NewGoError(err))
		}
		t, err := ctx.host.Attach(el, opts)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		if c, ok := controllers[t]; ok {
			return c
		}
		c := newController(ctx, t, log)
		controllers[t] = c
		return c
	})
}

// optionsYAML re-encodes a plain JS options object as YAML settings.
func optionsYAML(v goja.Value) ([]byte, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}
	m, ok := v.Export().(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: options must be an object", responsive.ErrInvalidSettings)
	}
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding options: %w", err)
	}
	return out, nil
}

func newController(ctx *domContext, t *responsive.Table, log logrus.FieldLogger) *goja.Object {
	vm := ctx.vm
	c := vm.NewObject()
	c.Set("table", ctx.elementProxy(t.Node()))
	c.Set("resize", func(call goja.FunctionCall) goja.Value {
		res := t.Resize(call.Argument(0).ToBoolean())
		obj := vm.NewObject()
		obj.Set("collapsed", intArray(vm, res.Collapsed))
		obj.Set("expanded", intArray(vm, res.Expanded))
		obj.Set("tableWidth", res.TableWidth)
		obj.Set("containerWidth", res.ContainerWidth)
		obj.Set("fits", res.Fits)
		return obj
	})
	c.Set("collapse", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(t.Collapse(int(call.Argument(0).ToInteger())))
	})
	c.Set("expand", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(t.Expand(int(call.Argument(0).ToInteger())))
	})
	c.Set("collapsed", func(goja.FunctionCall) goja.Value {
		return intArray(vm, t.Collapsed())
	})
	c.Set("on", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		kind, ok := responsive.ParseEventKind(name)
		if !ok {
			panic(vm.NewTypeError("unknown table event '" + name + "'"))
		}
		fn, ok := goja.AssertFunction(call.Argument(1))
		if !ok {
			panic(vm.NewTypeError("listener for '" + name + "' is not a function"))
		}
		t.On(kind, func(ev responsive.Event) {
			obj := vm.NewObject()
			obj.Set("type", ev.Kind.String())
			obj.Set("column", ev.Column)
			obj.Set("auto", ev.Auto)
			obj.Set("table", ctx.elementProxy(ev.Table.Node()))
			if _, err := fn(goja.Undefined(), obj); err != nil {
				log.WithError(err).WithField("event", name).Warn("Table listener failed.")
			}
		})
		return goja.Undefined()
	})
	return c
}

func intArray(vm *goja.Runtime, xs []int) *goja.Object {
	vals := make([]interface{}, len(xs))
	for i, x := range xs {
		vals[i] = x
	}
	return vm.NewArray(vals...)
}

// registerWindow installs window.resizeTo(width) and window.innerWidth.
func registerWindow(ctx *domContext) {
	vm := ctx.vm
	win := vm.NewObject()
	win.Set("resizeTo", func(call goja.FunctionCall) goja.Value {
		w := call.Argument(0).ToFloat()
		if w < 0 {
			panic(vm.NewTypeError("window width must not be negative"))
		}
		ctx.host.Resize(w)
		return goja.Undefined()
	})
	win.DefineAccessorProperty("innerWidth", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(ctx.host.Viewport())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	vm.Set("window", win)
}
