package script

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
)

// consoleAPI forwards the console object of a script to the document
// logger, one logger level per console method.
type consoleAPI struct {
	logger *log.Logger
	script string
}

var consoleLevels = map[string]log.Level{
	"debug": log.DebugLevel,
	"log":   log.InfoLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

func (c *consoleAPI) register(vm *goja.Runtime) error {
	console := vm.NewObject()
	for name, level := range consoleLevels {
		if err := console.Set(name, c.printer(level)); err != nil {
			return err
		}
	}
	return vm.Set("console", console)
}

func (c *consoleAPI) printer(level log.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		c.logger.Log(level, formatArgs(call.Arguments), "script", c.script)
		return goja.Undefined()
	}
}

// formatArgs joins the arguments with spaces. Objects and arrays are
// printed as JSON.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
		if _, ok := arg.(*goja.Object); !ok {
			continue
		}
		if b, err := json.Marshal(arg.Export()); err == nil {
			parts[i] = string(b)
		}
	}
	return strings.Join(parts, " ")
}
