package js

import (
	"strings"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"
)

// consoleAPI implements console.log, console.warn, and console.error.
type consoleAPI struct {
	log logrus.FieldLogger
}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.logFn)
	console.Set("warn", c.warn)
	console.Set("error", c.errorFn)
	vm.Set("console", console)
}

func (c *consoleAPI) logFn(call goja.FunctionCall) goja.Value {
	c.log.WithField("source", "console").Info(formatArgs(call.Arguments))
	return goja.Undefined()
}

func (c *consoleAPI) warn(call goja.FunctionCall) goja.Value {
	c.log.WithField("source", "console").Warn(formatArgs(call.Arguments))
	return goja.Undefined()
}

func (c *consoleAPI) errorFn(call goja.FunctionCall) goja.Value {
	c.log.WithField("source", "console").Error(formatArgs(call.Arguments))
	return goja.Undefined()
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
