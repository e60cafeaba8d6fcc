// Package transform executes user-supplied JavaScript transformers on a
// sandboxed Goja runtime.
//
// A transformer script exports a function taking (text, context) and
// returning the rewritten text:
//
//	export default function (text, context) {
//	  return "/* eslint-disable */\n" + text;
//	}
//
// A top-level function named `transform` works too. The context object is
// deep-frozen so scripts cannot mutate the schema between transformers.
package transform

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/hlop3z/typesmith/internal/gen"
	"github.com/hlop3z/typesmith/internal/jsutil"
	"github.com/hlop3z/typesmith/internal/tserr"
)

// DefaultTimeout bounds a single transformer invocation.
const DefaultTimeout = 5 * time.Second

// FromFile reads a transformer script and returns a Transformer bound to it.
// The script is read once; each invocation runs on a fresh VM.
func FromFile(path string, timeout time.Duration) (gen.Transformer, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrJSExecution, err, "cannot read transformer script").
			WithFile(path)
	}
	return FromSource(path, string(code), timeout), nil
}

// FromSource returns a Transformer executing the given script source.
// path is used for error reporting only.
func FromSource(path, code string, timeout time.Duration) gen.Transformer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	prepared := stripExports(code)

	return func(text string, ctx *gen.TransformContext) (string, error) {
		return run(path, prepared, text, ctx, timeout)
	}
}

// stripExports removes ES6 export statements since Goja only supports ES5.1.
// The default export is captured into a well-known binding so run can find it.
// Only line-leading export keywords are rewritten; string literals mentioning
// "export" pass through untouched.
func stripExports(code string) string {
	lines := strings.Split(code, "\n")
	bound := false
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case !bound && strings.HasPrefix(trimmed, "export default "):
			lines[i] = indent + "var __default = " + strings.TrimPrefix(trimmed, "export default ")
			bound = true
		case strings.HasPrefix(trimmed, "export "):
			lines[i] = indent + strings.TrimPrefix(trimmed, "export ")
		}
	}
	return strings.Join(lines, "\n")
}

func run(path, code, text string, ctx *gen.TransformContext, timeout time.Duration) (string, error) {
	vm := goja.New()

	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt("execution timeout")
	})
	defer timer.Stop()

	frozen, err := freezeContext(vm, ctx)
	if err != nil {
		return "", err
	}

	if _, err := vm.RunString(code); err != nil {
		return "", classify(err, path, timeout)
	}

	fn, err := lookupTransform(vm, path)
	if err != nil {
		return "", err
	}

	result, callErr := fn(goja.Undefined(), vm.ToValue(text), frozen)
	if callErr != nil {
		return "", classify(callErr, path, timeout)
	}

	out, ok := jsutil.ExportString(result)
	if !ok {
		return "", tserr.New(tserr.ErrJSResult, "transformer must return a string").
			With("returned", jsutil.TypeName(result)).
			WithFile(path)
	}
	return out, nil
}

// freezeContext marshals the transform context through JSON into a
// deep-frozen JS object. The round trip guarantees a pure JS value with no
// reachable Go state.
func freezeContext(vm *goja.Runtime, ctx *gen.TransformContext) (goja.Value, error) {
	names := make([]string, 0, len(ctx.Collections))
	for i := range ctx.Collections {
		names = append(names, ctx.Collections[i].Name)
	}

	doc := map[string]any{
		"schema":      ctx.Schema,
		"collections": names,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrJSExecution, err, "cannot encode transform context")
	}

	vm.Set("__contextJSON", string(raw))
	defer vm.Set("__contextJSON", goja.Undefined())

	frozen, err := vm.RunString(`(function() {
		function deepFreeze(o) {
			Object.freeze(o);
			if (typeof o !== 'object' || o === null) {
				return o;
			}
			Object.getOwnPropertyNames(o).forEach(function(prop) {
				if (o[prop] !== null && typeof o[prop] === 'object' && !Object.isFrozen(o[prop])) {
					deepFreeze(o[prop]);
				}
			});
			return o;
		}
		return deepFreeze(JSON.parse(__contextJSON));
	})()`)
	if err != nil {
		return nil, jsutil.WrapJSError(err, tserr.ErrJSExecution)
	}
	return frozen, nil
}

// lookupTransform finds the script's entry point: the captured default
// export first, then a top-level `transform` function.
func lookupTransform(vm *goja.Runtime, path string) (goja.Callable, error) {
	for _, name := range []string{"__default", "transform"} {
		v := vm.Get(name)
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			continue
		}
		if fn, ok := goja.AssertFunction(v); ok {
			return fn, nil
		}
	}
	return nil, tserr.New(tserr.ErrJSExecution, "script does not define a transformer function").
		WithFile(path).
		WithHelp("export a default function taking (text, context), or define `function transform(text, context)`")
}

// classify separates timeouts from ordinary JS failures.
func classify(err error, path string, timeout time.Duration) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return tserr.New(tserr.ErrJSTimeout, "transformer timed out").
			With("timeout", timeout.String()).
			WithFile(path)
	}
	return jsutil.WrapJSError(err, tserr.ErrJSExecution).WithFile(path)
}
