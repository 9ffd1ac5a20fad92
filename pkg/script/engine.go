// Package script runs user JavaScript that supplies extra placeholder
// values for every rendered page.
//
// A script defines a function named placeholders. It receives the page
// numbering and returns an object whose properties become placeholders:
//
//	function placeholders(page) {
//	    return { title: "Annual report", folio: page.totalPageNumber + " / " + page.totalPageCount };
//	}
//
// The property "title" is then substituted for "${title}" in texts that
// enable placeholder replacement.
package script

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"pagebox/pkg/errors"
	"pagebox/pkg/layout"
)

// EntryPoint is the function every script must define.
const EntryPoint = "placeholders"

// Engine holds one compiled script. A goja runtime is single-threaded, so
// calls are serialized.
type Engine struct {
	mu   sync.Mutex
	name string
	vm   *goja.Runtime
	fn   goja.Callable
}

// pageValue is the argument passed to the entry point.
type pageValue struct {
	PageSetIndex     int `json:"pageSetIndex"`
	PageSetPageIndex int `json:"pageSetPageIndex"`
	PageSetPageNum   int `json:"pageSetPageNumber"`
	PageSetPageCount int `json:"pageSetPageCount"`
	TotalPageIndex   int `json:"totalPageIndex"`
	TotalPageNumber  int `json:"totalPageNumber"`
	TotalPageCount   int `json:"totalPageCount"`
}

// New compiles and runs src once, then looks up the entry point. The
// logger receives console output; nil discards it.
func New(name, src string, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	c := &consoleAPI{logger: logger, script: name}
	if err := c.register(vm); err != nil {
		return nil, errors.Wrap(errors.ErrCodeScriptFailed, err, "script %s: console", name)
	}

	if _, err := vm.RunScript(name, src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeScriptFailed, err, "script %s", name)
	}
	fn, ok := goja.AssertFunction(vm.Get(EntryPoint))
	if !ok {
		return nil, errors.New(errors.ErrCodeScriptFailed, "script %s does not define function %s", name, EntryPoint)
	}
	return &Engine{name: name, vm: vm, fn: fn}, nil
}

// Placeholders calls the entry point for one page and returns its result
// keyed by property name. Values are converted to strings.
func (e *Engine) Placeholders(page layout.PageInfo) (map[string]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	arg := e.vm.ToValue(pageValue{
		PageSetIndex:     page.PageSetIndex,
		PageSetPageIndex: page.PageSetPageIndex,
		PageSetPageNum:   page.PageSetPageIndex + 1,
		PageSetPageCount: page.PageSetPageCount,
		TotalPageIndex:   page.TotalPageIndex,
		TotalPageNumber:  page.TotalPageIndex + 1,
		TotalPageCount:   page.TotalPageCount,
	})
	v, err := e.fn(goja.Undefined(), arg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScriptFailed, err, "script %s: %s", e.name, EntryPoint)
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}
	obj, ok := v.Export().(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeScriptFailed, "script %s: %s must return an object, got %s",
			e.name, EntryPoint, v.ExportType())
	}
	out := make(map[string]string, len(obj))
	for k, val := range obj {
		out[k] = fmt.Sprint(val)
	}
	return out, nil
}

// Customizer adapts the engine to a page set render hook. Every returned
// property k is added as "${k}".
func (e *Engine) Customizer() layout.RenderCustomizer {
	return func(ctx *layout.RenderContext) error {
		values, err := e.Placeholders(ctx.Page)
		if err != nil {
			return err
		}
		if ctx.Placeholders == nil {
			ctx.Placeholders = make(map[string]string, len(values))
		}
		for k, v := range values {
			ctx.Placeholders["${"+k+"}"] = v
		}
		return nil
	}
}
